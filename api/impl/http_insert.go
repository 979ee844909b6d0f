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

package impl

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ebay/kgraph/api"
	"github.com/ebay/kgraph/loader"
	"github.com/ebay/kgraph/util/web"
	"github.com/julienschmidt/httprouter"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// defaultMaxInsertBytes limits the size of an insert request body.
const defaultMaxInsertBytes = 64 << 20

// insert adds the triples in the request body to the graph. The "format"
// parameter is "tsv" (the default) or "nquads". Nothing is added if any line
// is malformed.
func (s *Server) insert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	span, ctx := opentracing.StartSpanFromContext(r.Context(), "insert")
	defer span.Finish()

	resp := api.InsertResponse{}
	status := http.StatusOK
	// Always write out JSON, even for errors.
	defer func() {
		resp.Triples = s.graph.Store.Len()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		web.Write(w, resp)
	}()

	if !s.cfg.AllowInsert {
		resp.Error = "inserts are disabled on this server"
		status = http.StatusForbidden
		return
	}
	format := loader.TSV
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := loader.ParseFormat(name)
		if err != nil {
			resp.Error = err.Error()
			status = http.StatusBadRequest
			return
		}
		format = f
	}
	body := http.MaxBytesReader(w, r.Body, s.maxInsertBytes)
	added, err := s.graph.Insert(ctx, body, "request", format)
	if err != nil {
		resp.Error = fmt.Sprintf("unable to insert: %v", err)
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, new(*loader.DataError)):
			status = http.StatusBadRequest
		case errors.As(err, &tooLarge):
			status = http.StatusRequestEntityTooLarge
		default:
			status = http.StatusInternalServerError
		}
		return
	}
	resp.Added = added
	metrics.insertedTriples.Add(float64(added))
	log.WithFields(log.Fields{
		"requestID": web.RequestID(ctx),
		"added":     added,
	}).Info("Inserted triples")
}
