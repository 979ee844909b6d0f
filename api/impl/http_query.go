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
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/ebay/kgraph/api"
	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/query/parser"
	"github.com/ebay/kgraph/util/table"
	"github.com/ebay/kgraph/util/web"
	"github.com/julienschmidt/httprouter"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// maxQueryBytes limits the size of a query sent as a request body.
const maxQueryBytes = 1 << 20

// queryText returns the query from the "q" form value, or else from the body
// of a POST request that isn't form encoded.
func queryText(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", fmt.Errorf("unable to parse form data: %v", err)
	}
	if q := r.Form.Get("q"); q != "" {
		return q, nil
	}
	if r.Method == http.MethodPost && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		body, err := ioutil.ReadAll(http.MaxBytesReader(nil, r.Body, maxQueryBytes))
		if err != nil {
			return "", fmt.Errorf("unable to read query: %v", err)
		}
		if len(body) > 0 {
			return string(body), nil
		}
	}
	return "", errors.New("missing query: pass it in the 'q' parameter")
}

// errorStatus picks the HTTP status for a failed query.
func errorStatus(err error) int {
	switch err.(type) {
	case *parser.ParseError, *query.DefinitionError:
		return http.StatusBadRequest
	}
	if err == context.Canceled || err == context.DeadlineExceeded {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// runQuery reads, parses and executes the request's query. Upon error, it
// returns the HTTP status to report.
func (s *Server) runQuery(ctx context.Context, r *http.Request) (string, *query.ResultSet, int, error) {
	text, err := queryText(r)
	if err != nil {
		return "", nil, http.StatusBadRequest, err
	}
	log.WithFields(log.Fields{
		"requestID": web.RequestID(ctx),
	}).Debugf("query string:\n%s", text)
	_, res, err := s.graph.Query(ctx, text)
	if err != nil {
		return text, nil, errorStatus(err), err
	}
	metrics.queryRows.Observe(float64(len(res.Rows)))
	return text, res, http.StatusOK, nil
}

// queryHTTP evaluates a query and writes the results as a JSON
// api.QueryResponse.
func (s *Server) queryHTTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	querySpan, ctx := opentracing.StartSpanFromContext(r.Context(), "query")
	defer querySpan.Finish()

	text, res, status, err := s.runQuery(ctx, r)
	resp := &api.QueryResponse{Query: text}
	if err != nil {
		resp.Error = err.Error()
		querySpan.SetTag("error", true)
	} else {
		resp = api.NewQueryResponse(text, res, s.cfg.MaxRows)
	}
	// Always write out JSON, even for errors.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	web.Write(w, resp)
}

// queryTable evaluates a query and writes the results as a text table.
func (s *Server) queryTable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	querySpan, ctx := opentracing.StartSpanFromContext(r.Context(), "query")
	defer querySpan.Finish()

	_, res, status, err := s.runQuery(ctx, r)
	if err != nil {
		web.WriteError(w, status, "%v", err)
		return
	}
	truncated := false
	if s.cfg.MaxRows > 0 && len(res.Rows) > s.cfg.MaxRows {
		res.Rows = res.Rows[:s.cfg.MaxRows]
		truncated = true
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err = table.PrettyPrint(w, s.graph.Table(res), table.HeaderRow|table.JustifyNumbers)
	if err != nil {
		log.WithError(err).Warn("Unable to write query results")
		return
	}
	if truncated {
		fmt.Fprintf(w, "(truncated to %d rows)\n", s.cfg.MaxRows)
	} else if len(res.Rows) == 1 {
		io.WriteString(w, "(1 row)\n")
	} else {
		fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	}
}
