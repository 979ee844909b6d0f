// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package impl serves a knowledge graph over HTTP: queries, DOT export,
// statistics, inserts and Prometheus metrics.
package impl

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ebay/kgraph/config"
	"github.com/ebay/kgraph/kg"
	"github.com/ebay/kgraph/util/web"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// New returns a new instance of the API server over the given graph. The
// returned Server will not start handling traffic until a subsequent call to
// Server.Run(); Handler may be used to serve it some other way.
func New(cfg *config.API, graph *kg.Graph) *Server {
	if cfg == nil {
		cfg = &config.API{}
	}
	return &Server{
		cfg:             cfg,
		graph:           graph,
		profileFilename: "prof.cpu",
		maxInsertBytes:  defaultMaxInsertBytes,
	}
}

// Server is an implementation of the HTTP interface to a knowledge graph.
type Server struct {
	cfg   *config.API
	graph *kg.Graph
	// CPU profiles are written here.
	profileFilename string
	// Larger insert request bodies are refused.
	maxInsertBytes int64
}

// maxProfileDuration limits how long a single request may profile the server.
const maxProfileDuration = 5 * time.Minute

// Handler returns the routes served by the Server.
func (s *Server) Handler() http.Handler {
	m := httprouter.New()

	m.GET("/query", s.instrument("query", s.queryHTTP))
	m.POST("/query", s.instrument("query", s.queryHTTP))
	m.GET("/query.txt", s.instrument("query.txt", s.queryTable))
	m.GET("/export", s.instrument("export", s.exportDOT))
	m.GET("/stats", s.instrument("stats", s.stats))
	m.GET("/stats.txt", s.instrument("stats.txt", s.statsTable))
	m.GET("/prefixes", s.instrument("prefixes", s.prefixes))
	m.POST("/insert", s.instrument("insert", s.insert))
	m.POST("/logLevel", s.instrument("logLevel", s.setLogLevel))
	m.POST("/profile", s.instrument("profile", s.profile))
	// prometheus metrics
	m.Handler("GET", "/metrics", promhttp.Handler())

	return web.WithRequestID(m)
}

// instrument counts the requests to a route by response status.
func (s *Server) instrument(route string, h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h(sw, r, p)
		metrics.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	}
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Run will start listening for HTTP requests. This function will block until
// ctx is canceled, at which point the server is shut down gracefully, or
// until the server fails.
func (s *Server) Run(ctx context.Context) error {
	address := s.cfg.HTTPAddress
	if address == "" {
		address = config.DefaultHTTPAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: s.Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.WithFields(log.Fields{
		"address": address,
		"triples": s.graph.Store.Len(),
	}).Info("Serving HTTP")
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
