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

package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/store"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/ps2games#"

func iri(local string) rdf.Node {
	return rdf.IRI(ns + local)
}

var naughtyDog = rdf.IRI("http://naughtydog.com/")

func gamesStore() *store.Store {
	s := store.New()
	s.AddAll([]rdf.Triple{
		rdf.T(iri("FFX"), rdf.Type, iri("RPG")),
		rdf.T(iri("FFX"), iri("hasTitle"), rdf.String("Final Fantasy X")),
		rdf.T(iri("FFX"), iri("developedBy"), iri("Square")),
		rdf.T(iri("Square"), rdf.Type, iri("Developer")),
		rdf.T(iri("Square"), iri("hasName"), rdf.String("Square")),
		rdf.T(iri("RPG"), rdf.SubClassOf, iri("Game")),
		rdf.T(iri("FFX"), iri("hasRating"), rdf.Float64(9.2)),
		rdf.T(iri("Jak"), iri("hasTitle"), rdf.String(`Jak "and" Daxter`)),
		rdf.T(iri("Jak"), rdf.Type, iri("Game")),
		rdf.T(iri("Jak"), rdf.Type, iri("ActionGame")),
		rdf.T(iri("Jak"), iri("developedBy"), naughtyDog),
		rdf.T(iri("Jak"), iri("partOfSeries"), iri("JakSeries")),
		rdf.T(iri("JakSeries"), iri("hasName"), rdf.String("Jak\nSeries")),
	})
	return s
}

func ps2Options() Options {
	opts := DefaultOptions()
	opts.GraphName = "PS2Games"
	opts.LabelPredicates = []rdf.Node{iri("hasName"), iri("hasTitle")}
	opts.TypeColors[ns+"RPG"] = "#FF6B6B"
	opts.TypeColors[ns+"ActionGame"] = "#FF6B6B"
	opts.TypeColors[ns+"Developer"] = "#4ECDC4"
	return opts
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func Test_WriteStore(t *testing.T) {
	var buf bytes.Buffer
	err := New(ps2Options()).WriteStore(context.Background(), &buf, gamesStore())
	require.NoError(t, err)
	newGoldie(t).Assert(t, "store", buf.Bytes())
}

func Test_WriteResult(t *testing.T) {
	rs := &query.ResultSet{
		Columns: []string{"game", "dev"},
		Rows: [][]rdf.Node{
			{iri("FFX"), iri("Square")},
			{iri("Jak"), naughtyDog},
			{iri("FFX"), rdf.String("not a node")},
		},
	}
	var buf bytes.Buffer
	err := New(ps2Options()).WriteResult(context.Background(), &buf, gamesStore(), rs)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "result", buf.Bytes())
}

func Test_ExportIsDeterministic(t *testing.T) {
	s := gamesStore()
	e := New(ps2Options())
	var first, second bytes.Buffer
	require.NoError(t, e.WriteStore(context.Background(), &first, s))
	require.NoError(t, e.WriteStore(context.Background(), &second, s))
	assert.Equal(t, first.String(), second.String())
}

func Test_LiteralObjectsAreNotEdges(t *testing.T) {
	s := gamesStore()
	var buf bytes.Buffer
	require.NoError(t, New(ps2Options()).WriteStore(context.Background(), &buf, s))
	edges := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, " -> ") {
			edges++
			assert.NotContains(t, line, "hasTitle")
			assert.NotContains(t, line, "hasName")
			assert.NotContains(t, line, "hasRating")
		}
	}
	iriObjects := 0
	for _, triple := range s.All() {
		if triple.Object.IsIRI() {
			iriObjects++
		}
	}
	assert.Equal(t, iriObjects, edges)
	assert.NotContains(t, buf.String(), "9.2")
}

func Test_ExcludePredicates(t *testing.T) {
	opts := ps2Options()
	opts.ExcludePredicates = []rdf.Node{rdf.Type, rdf.SubClassOf}
	var buf bytes.Buffer
	require.NoError(t, New(opts).WriteStore(context.Background(), &buf, gamesStore()))
	out := buf.String()
	assert.NotContains(t, out, `[label="type"]`)
	assert.NotContains(t, out, `"Developer" [`)
	assert.Contains(t, out, `"FFX" -> "Square" [label="developedBy"];`)
	// Types still pick the node's color.
	assert.Contains(t, out, `"Square" [label="Square", fillcolor="#4ECDC4", tooltip="Developer"];`)
}

func Test_EdgeColors(t *testing.T) {
	opts := ps2Options()
	opts.EdgeColors[ns+"developedBy"] = "#666666"
	var buf bytes.Buffer
	require.NoError(t, New(opts).WriteStore(context.Background(), &buf, gamesStore()))
	out := buf.String()
	assert.Contains(t, out, `"FFX" -> "Square" [label="developedBy", color="#666666"];`)
	assert.Contains(t, out, `"Jak" -> "JakSeries" [label="partOfSeries"];`)
}

func Test_EmptyStore(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	require.NoError(t, New(opts).WriteStore(context.Background(), &buf, store.New()))
	assert.Equal(t, `digraph "KnowledgeGraph" {
    rankdir="LR";
    node [shape=box, style=filled];
    graph [bgcolor=white, fontname="Arial", fontsize=16];
    edge [fontname="Arial", fontsize=10];

}
`, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func Test_WriteErrorsAreReturned(t *testing.T) {
	err := New(ps2Options()).WriteStore(context.Background(), failingWriter{}, gamesStore())
	assert.EqualError(t, err, "writing graph: disk full")
}

func Test_nodeID(t *testing.T) {
	tests := []struct {
		in  rdf.Node
		exp string
	}{
		{iri("FFX"), "FFX"},
		{rdf.IRI("http://example.org/a#b#c"), "b#c"},
		{rdf.IRI("http://example.org/games/"), "http___example_org_games_"},
		{rdf.IRI("http://example.org/empty#"), "http___example_org_empty_"},
		{rdf.IRI("urn:isbn:0-14"), "urn_isbn_0_14"},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, nodeID(test.in), "%v", test.in)
	}
}

func Test_quote(t *testing.T) {
	tests := []struct {
		in  string
		exp string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines\r\n", `"two\nlines\n"`},
		{"", `""`},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, quote(test.in))
	}
}
