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

// Package api defines the JSON documents served by the kgraph HTTP server.
package api

import (
	"fmt"
	"strings"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/stats"
)

// Value is a single result value. Kind is one of "iri", "string", "int64",
// "float64", "bool", or "nil" for a variable left unbound.
type Value struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// NewValue converts a node to its JSON form.
func NewValue(n rdf.Node) Value {
	return Value{Kind: n.Kind().String(), Value: n.Lexical()}
}

func (v Value) String() string {
	return fmt.Sprintf("%s:%s", v.Kind, v.Value)
}

// QueryResponse is the outcome of a query. Error is set if the query couldn't
// be parsed or evaluated, in which case there are no columns or rows.
type QueryResponse struct {
	Query   string    `json:"query"`
	Columns []string  `json:"columns,omitempty"`
	Rows    [][]Value `json:"rows,omitempty"`
	// Truncated is true if the server dropped rows beyond its limit.
	Truncated bool   `json:"truncated,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewQueryResponse converts a result set, keeping at most maxRows rows if
// maxRows > 0.
func NewQueryResponse(text string, res *query.ResultSet, maxRows int) *QueryResponse {
	resp := &QueryResponse{
		Query:   text,
		Columns: res.Columns,
		Rows:    make([][]Value, 0, len(res.Rows)),
	}
	for _, row := range res.Rows {
		if maxRows > 0 && len(resp.Rows) == maxRows {
			resp.Truncated = true
			break
		}
		values := make([]Value, len(row))
		for i, n := range row {
			values[i] = NewValue(n)
		}
		resp.Rows = append(resp.Rows, values)
	}
	return resp
}

func (r QueryResponse) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "QueryResponse{")
	fmt.Fprintf(&buf, "\n Query: '%s'", strings.Replace(r.Query, "\n", "; ", -1))
	fmt.Fprintf(&buf, "\n Columns: %v", r.Columns)
	fmt.Fprintf(&buf, "\n Rows: %d", len(r.Rows))
	if r.Error != "" {
		fmt.Fprintf(&buf, "\n Error: %s", r.Error)
	}
	fmt.Fprintf(&buf, "\n}")
	return buf.String()
}

// InsertResponse is the outcome of an insert request.
type InsertResponse struct {
	// The number of triples in the request that weren't already present.
	Added int `json:"added"`
	// The number of triples in the graph afterwards.
	Triples int    `json:"triples"`
	Error   string `json:"error,omitempty"`
}

// TypeCount is the number of nodes of one type.
type TypeCount struct {
	Type      string `json:"type"`
	Explicit  int    `json:"explicit"`
	Instances int    `json:"instances"`
}

// PredicateCount is the number of triples using one predicate.
type PredicateCount struct {
	Predicate string `json:"predicate"`
	Count     int    `json:"count"`
}

// StatsResponse summarizes the graph. IRIs are written in full.
type StatsResponse struct {
	Triples    int              `json:"triples"`
	Types      []TypeCount      `json:"types"`
	Predicates []PredicateCount `json:"predicates"`
}

// NewStatsResponse converts the computed statistics.
func NewStatsResponse(s *stats.Stats) *StatsResponse {
	resp := &StatsResponse{
		Triples:    s.Triples,
		Types:      make([]TypeCount, len(s.Types)),
		Predicates: make([]PredicateCount, len(s.Predicates)),
	}
	for i, t := range s.Types {
		resp.Types[i] = TypeCount{Type: t.Type.Lexical(), Explicit: t.Explicit, Instances: t.Instances}
	}
	for i, p := range s.Predicates {
		resp.Predicates[i] = PredicateCount{Predicate: p.Predicate.Lexical(), Count: p.Count}
	}
	return resp
}
