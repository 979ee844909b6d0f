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
	"bytes"
	"net/http"

	"github.com/ebay/kgraph/api"
	"github.com/ebay/kgraph/stats"
	"github.com/ebay/kgraph/util/web"
	"github.com/julienschmidt/httprouter"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// exportDOT writes the graph in the DOT language. If the "q" parameter holds
// a query, only the subgraph spanned by its results is written.
func (s *Server) exportDOT(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	span, ctx := opentracing.StartSpanFromContext(r.Context(), "export")
	defer span.Finish()
	if err := r.ParseForm(); err != nil {
		web.WriteError(w, http.StatusBadRequest, "unable to parse form data: %v", err)
		return
	}
	var buf bytes.Buffer
	if text := r.Form.Get("q"); text != "" {
		_, res, err := s.graph.Query(ctx, text)
		if err != nil {
			web.WriteError(w, errorStatus(err), "%v", err)
			return
		}
		err = s.graph.WriteDOT(ctx, &buf, res)
		if err != nil {
			web.Write(w, err)
			return
		}
	} else if err := s.graph.WriteDOT(ctx, &buf, nil); err != nil {
		web.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	web.Write(w, buf.Bytes())
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	web.Write(w, api.NewStatsResponse(s.graph.Stats(r.Context())))
}

func (s *Server) statsTable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err := stats.PrettyPrint(r.Context(), w, s.graph.Stats(r.Context()), s.graph.Prefixes)
	if err != nil {
		log.WithError(err).Warn("Unable to write stats")
	}
}

func (s *Server) prefixes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	web.Write(w, s.graph.Prefixes)
}
