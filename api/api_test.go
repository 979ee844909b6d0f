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

package api

import (
	"encoding/json"
	"testing"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/ps2games#"

func Test_NewQueryResponse(t *testing.T) {
	res := &query.ResultSet{
		Columns: []string{"game", "rating"},
		Rows: [][]rdf.Node{
			{rdf.IRI(ns + "FinalFantasyX"), rdf.Float64(9.2)},
			{rdf.IRI(ns + "Tekken3"), rdf.Nil},
		},
	}
	resp := NewQueryResponse("SELECT ...", res, 0)
	assert.False(t, resp.Truncated)
	assert.Equal(t, [][]Value{
		{{"iri", ns + "FinalFantasyX"}, {"float64", "9.2"}},
		{{"iri", ns + "Tekken3"}, {"nil", ""}},
	}, resp.Rows)

	resp = NewQueryResponse("SELECT ...", res, 1)
	assert.True(t, resp.Truncated)
	assert.Len(t, resp.Rows, 1)

	js, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": "SELECT ...",
		"columns": ["game", "rating"],
		"rows": [[{"kind": "iri", "value": "`+ns+`FinalFantasyX"}, {"kind": "float64", "value": "9.2"}]],
		"truncated": true
	}`, string(js))
}

func Test_EmptyQueryResponse(t *testing.T) {
	resp := NewQueryResponse("q", &query.ResultSet{Columns: []string{"x"}}, 0)
	js, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query": "q", "columns": ["x"]}`, string(js))
}

func Test_QueryResponseString(t *testing.T) {
	resp := QueryResponse{Query: "SELECT ?x\nWHERE {}", Error: "bad"}
	assert.Equal(t, "QueryResponse{\n Query: 'SELECT ?x; WHERE {}'\n Columns: []\n Rows: 0\n Error: bad\n}", resp.String())
	assert.Equal(t, "int64:42", NewValue(rdf.Int64(42)).String())
}

func Test_NewStatsResponse(t *testing.T) {
	s := &stats.Stats{
		Triples: 3,
		Types: []stats.TypeCount{
			{Type: rdf.IRI(ns + "Game"), Explicit: 1, Instances: 2},
		},
		Predicates: []stats.PredicateCount{
			{Predicate: rdf.Type, Count: 2},
			{Predicate: rdf.IRI(ns + "hasTitle"), Count: 1},
		},
	}
	assert.Equal(t, &StatsResponse{
		Triples: 3,
		Types:   []TypeCount{{Type: ns + "Game", Explicit: 1, Instances: 2}},
		Predicates: []PredicateCount{
			{Predicate: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", Count: 2},
			{Predicate: ns + "hasTitle", Count: 1},
		},
	}, NewStatsResponse(s))
}
