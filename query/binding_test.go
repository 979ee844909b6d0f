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

package query

import (
	"testing"

	"github.com/ebay/kgraph/rdf"
	"github.com/stretchr/testify/assert"
)

func Test_BindingIsImmutable(t *testing.T) {
	assert := assert.New(t)
	var empty Binding
	one := empty.With("a", iri("A"))
	two := one.With("b", rdf.Int64(2))
	replaced := two.With("a", iri("Z"))

	assert.Equal(0, empty.Len())
	assert.Equal(1, one.Len())
	assert.Equal(2, two.Len())
	v, ok := two.Get("a")
	assert.True(ok)
	assert.Equal(iri("A"), v)
	v, _ = replaced.Get("a")
	assert.Equal(iri("Z"), v)
	_, ok = one.Get("b")
	assert.False(ok)
	assert.Equal([]string{"a", "b"}, replaced.Names())
	assert.Equal(`{a=<http://example.org/ps2games#A>, b=2}`, two.String())
}

func Test_BindingBind(t *testing.T) {
	assert := assert.New(t)
	b := Binding{}.With("x", iri("X"))
	res, ok := b.bind(Var("x"), iri("X"))
	assert.True(ok)
	assert.Equal(b, res)
	_, ok = b.bind(Var("x"), iri("Y"))
	assert.False(ok)
	res, ok = b.bind(Var("y"), iri("Y"))
	assert.True(ok)
	assert.Equal(2, res.Len())
	res, ok = b.bind(c("Const"), iri("Other"))
	assert.True(ok)
	assert.Equal(b, res)
}

func Test_applyPattern(t *testing.T) {
	e := newEngine(
		rdf.T(iri("FFX"), iri("developedBy"), iri("Square")),
		rdf.T(iri("KH"), iri("developedBy"), iri("Square")),
		rdf.T(iri("GoW"), iri("developedBy"), iri("SantaMonica")),
		rdf.T(iri("Square"), iri("developedBy"), iri("Square")),
	)
	p := &TriplePattern{Var("g"), c("developedBy"), Var("d")}
	start := []Binding{{}}
	all := e.applyPattern(start, p)
	assert.Len(t, all, 4)

	// Already bound variables are substituted.
	bound := []Binding{
		Binding{}.With("d", iri("Square")),
		Binding{}.With("d", iri("Nobody")),
		Binding{}.With("d", iri("SantaMonica")),
	}
	res := e.applyPattern(bound, p)
	var games []rdf.Node
	for _, b := range res {
		g, _ := b.Get("g")
		games = append(games, g)
	}
	assert.Equal(t, []rdf.Node{iri("FFX"), iri("KH"), iri("Square"), iri("GoW")}, games)

	// A repeated variable must bind the same value in both positions.
	self := e.applyPattern(start, &TriplePattern{Var("x"), c("developedBy"), Var("x")})
	assert.Len(t, self, 1)
	x, _ := self[0].Get("x")
	assert.Equal(t, iri("Square"), x)

	assert.Empty(t, e.applyPattern(nil, p))
}

func Test_evaluate(t *testing.T) {
	b := Binding{}.
		With("sales", rdf.String("8500000")).
		With("title", rdf.String("Final Fantasy X")).
		With("game", iri("FFX")).
		With("rating", rdf.Float64(9.2))
	tests := []struct {
		c   Comparison
		exp bool
	}{
		{Comparison{Var("sales"), OpGreater, Const(rdf.Int64(5000000))}, true},
		{Comparison{Var("sales"), OpLess, Const(rdf.Int64(5000000))}, false},
		{Comparison{Var("sales"), OpLessOrEqual, Const(rdf.String("8500000"))}, true},
		{Comparison{Var("rating"), OpGreaterOrEqual, Const(rdf.Float64(9.2))}, true},
		{Comparison{Var("sales"), OpEqual, Const(rdf.Int64(8500000))}, true},
		{Comparison{Var("rating"), OpEqual, Const(rdf.String("9.20"))}, true},
		{Comparison{Var("title"), OpEqual, Const(rdf.String("Final Fantasy X"))}, true},
		{Comparison{Var("title"), OpNotEqual, Const(rdf.String("Final Fantasy X"))}, false},
		{Comparison{Var("title"), OpGreater, Const(rdf.Int64(1))}, false},
		{Comparison{Var("title"), OpContains, Const(rdf.String("Fantasy"))}, true},
		{Comparison{Var("title"), OpContains, Const(rdf.String("fantasy"))}, false},
		{Comparison{Var("game"), OpEqual, c("FFX")}, true},
		{Comparison{Var("game"), OpEqual, Const(rdf.String(ns + "FFX"))}, false},
		{Comparison{Var("game"), OpNotEqual, c("KH")}, true},
		{Comparison{Var("game"), OpGreater, Const(rdf.Int64(0))}, false},
		{Comparison{Var("missing"), OpNotEqual, c("KH")}, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, evaluate(b, test.c), "%v", test.c)
	}
}

func Test_QueryString(t *testing.T) {
	q := seriesCountQuery()
	q.Distinct = true
	q.Having = []Comparison{{Var("gameCount"), OpGreater, Const(rdf.Int64(0))}}
	q.Limit = 10
	q.Offset = 5
	exp := `SELECT DISTINCT ?seriesName (COUNT(?game) AS ?gameCount)
WHERE {
  ?series a <http://example.org/ps2games#GameSeries>
  ?series <http://example.org/ps2games#hasName> ?seriesName
  ?game <http://example.org/ps2games#partOfSeries> ?series
}
GROUP BY ?seriesName
HAVING ?gameCount <gt> 0
ORDER BY DESC(?gameCount)
LIMIT 10
OFFSET 5`
	assert.Equal(t, exp, q.String())
}

func Test_ResultSetAccessors(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"g", "n"},
		Rows: [][]rdf.Node{
			{iri("FFX"), rdf.Int64(3)},
			{iri("GT3"), rdf.Nil},
		},
	}
	assert := assert.New(t)
	assert.Equal(2, rs.Len())
	assert.Equal(1, rs.Column("n"))
	assert.Equal(-1, rs.Column("x"))
	assert.Equal(rdf.Int64(3), rs.Value(0, "n"))
	assert.Equal(rdf.Nil, rs.Value(0, "x"))
	assert.Equal([][]string{
		{"?g", "?n"},
		{ns + "FFX", "3"},
		{ns + "GT3", ""},
	}, rs.Strings())
}
