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

package kg

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/ebay/kgraph/config"
	"github.com/ebay/kgraph/loader"
	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/query/parser"
	"github.com/ebay/kgraph/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/ps2games#"

func loadPS2(t *testing.T) *Graph {
	cfg, err := config.Load("../testdata/kgraph.yaml")
	require.NoError(t, err)
	g, err := New(cfg)
	require.NoError(t, err)
	added, err := g.LoadFile(context.Background(), "../testdata/ps2games.tsv", "")
	require.NoError(t, err)
	require.Equal(t, 158, added)
	return g
}

func Test_QueryInfersSubclasses(t *testing.T) {
	g := loadPS2(t)
	_, res, err := g.Query(context.Background(), `
SELECT ?title WHERE {
  ?g a ps2:Game .
  ?g ps2:hasTitle ?title
} ORDER BY ?title`)
	require.NoError(t, err)
	var titles []string
	for _, row := range res.Rows {
		titles = append(titles, row[0].Lexical())
	}
	assert.Equal(t, []string{
		"Final Fantasy X",
		"God of War",
		"God of War II",
		"Grand Theft Auto: San Andreas",
		"Metal Gear Solid 2: Sons of Liberty",
		"Tekken 3",
	}, titles)
}

func Test_QueryErrors(t *testing.T) {
	g := loadPS2(t)
	_, _, err := g.Query(context.Background(), "SELECT ?x WHERE { ?x a nope:Game }")
	assert.IsType(t, &parser.ParseError{}, err)
	q, _, err := g.Query(context.Background(), "SELECT ?y WHERE { ?x a ps2:Game }")
	assert.IsType(t, &query.DefinitionError{}, err)
	assert.NotNil(t, q)
}

func Test_ExportOptions(t *testing.T) {
	cfg, err := config.Load("../testdata/kgraph.yaml")
	require.NoError(t, err)
	opts, err := ExportOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, "PS2Games", opts.GraphName)
	assert.Equal(t, "Arial", opts.FontName)
	assert.Equal(t, []rdf.Node{rdf.IRI(ns + "hasTitle"), rdf.IRI(ns + "hasName")}, opts.LabelPredicates)
	assert.Equal(t, []rdf.Node{rdf.SubClassOf}, opts.ExcludePredicates)
	assert.Equal(t, "#4ECDC4", opts.TypeColors[ns+"Developer"])
	assert.Equal(t, "#FF9500", opts.EdgeColors[ns+"isSequelOf"])

	opts, err = ExportOptions(config.Default())
	require.NoError(t, err)
	assert.Equal(t, "KnowledgeGraph", opts.GraphName)
	assert.Empty(t, opts.LabelPredicates)
}

func Test_CustomVocabulary(t *testing.T) {
	cfg := config.Default()
	cfg.Prefixes["ps2"] = ns
	cfg.Vocabulary.TypePredicate = "ps2:kind"
	g, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI(ns+"kind"), g.Reasoner.TypePredicate())
	assert.Equal(t, rdf.IRI(ns+"kind"), g.Export.TypePredicate)

	_, err = g.Insert(context.Background(), strings.NewReader(`
ps2:RPG  rdfs:subClassOf  ps2:Game
ps2:FFX  ps2:kind  ps2:RPG
`), "body", loader.TSV)
	require.NoError(t, err)
	_, res, err := g.Query(context.Background(), "SELECT ?g WHERE { ?g a ps2:Game }")
	require.NoError(t, err)
	assert.Equal(t, [][]rdf.Node{{rdf.IRI(ns + "FFX")}}, res.Rows)

	// 'a' in tsv input means the configured type predicate.
	_, err = g.Insert(context.Background(), strings.NewReader("ps2:KH  a  ps2:RPG\n"), "body", loader.TSV)
	require.NoError(t, err)
	assert.True(t, g.Store.Contains(rdf.T(rdf.IRI(ns+"KH"), rdf.IRI(ns+"kind"), rdf.IRI(ns+"RPG"))))
	_, res, err = g.Query(context.Background(), "SELECT ?g WHERE { ?g a ps2:Game }")
	require.NoError(t, err)
	assert.Equal(t, [][]rdf.Node{{rdf.IRI(ns + "FFX")}, {rdf.IRI(ns + "KH")}}, res.Rows)

	cfg.Vocabulary.TypePredicate = "bogus"
	_, err = New(cfg)
	assert.Error(t, err)
}

func Test_LoadFiles(t *testing.T) {
	cfg, err := config.Load("../testdata/kgraph.yaml")
	require.NoError(t, err)
	g, err := New(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = g.LoadFiles(ctx, []string{"../testdata/ps2games.tsv", "../testdata/missing.tsv"}, "", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, g.Store.Len())

	var lock sync.Mutex
	read := make(map[int]int)
	added, err := g.LoadFiles(ctx, []string{"../testdata/ps2games.tsv", "../testdata/ps2games.tsv"}, "",
		func(file int, n int, err error) {
			assert.NoError(t, err)
			lock.Lock()
			read[file] = n
			lock.Unlock()
		})
	require.NoError(t, err)
	assert.Equal(t, 158, added)
	assert.Equal(t, 158, g.Store.Len())
	assert.Equal(t, map[int]int{0: 158, 1: 158}, read)

	added, err = g.LoadFiles(ctx, nil, "", nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, added)
}

func Test_InsertIsAllOrNothing(t *testing.T) {
	g := loadPS2(t)
	before := g.Store.Len()
	_, err := g.Insert(context.Background(), strings.NewReader(`
ps2:Okami  a  ps2:ActionGame
ps2:Okami  ps2:hasTitle
`), "body", loader.TSV)
	assert.IsType(t, &loader.DataError{}, err)
	assert.Equal(t, before, g.Store.Len())

	added, err := g.Insert(context.Background(), strings.NewReader(`
ps2:Okami  a  ps2:ActionGame
ps2:FinalFantasyX  a  ps2:RPG
`), "body", loader.TSV)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, before+1, g.Store.Len())
}

func Test_QuerySeesOneGeneration(t *testing.T) {
	cfg := config.Default()
	cfg.Prefixes["ps2"] = ns
	g, err := New(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	const inserts = 40
	done := make(chan error, 1)
	go func() {
		for i := 0; i < inserts; i++ {
			_, err := g.Insert(ctx, strings.NewReader(fmt.Sprintf("ps2:g%d  ps2:p  %d\n", i, i)), "body", loader.TSV)
			if err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	// Both patterns match every ps2:p triple, so a query evaluated against one
	// store generation returns a square number of rows.
	for i := 0; i < inserts; i++ {
		_, res, err := g.Query(ctx, "SELECT ?a ?c WHERE { ?a ps2:p ?b . ?c ps2:p ?d }")
		require.NoError(t, err)
		n := int(math.Sqrt(float64(res.Len())))
		assert.Equal(t, n*n, res.Len(), "rows from two store generations")
	}
	require.NoError(t, <-done)
	_, res, err := g.Query(ctx, "SELECT ?a ?c WHERE { ?a ps2:p ?b . ?c ps2:p ?d }")
	require.NoError(t, err)
	assert.Equal(t, inserts*inserts, res.Len())
}

func Test_WriteDOT(t *testing.T) {
	g := loadPS2(t)
	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(context.Background(), &buf, nil))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `digraph "PS2Games" {`), out[:40])
	assert.Contains(t, out, `"FinalFantasyX" [label="Final Fantasy X", fillcolor="#FF6B6B", tooltip="RPG"];`)
	assert.NotContains(t, out, `label="subClassOf"`)

	_, res, err := g.Query(context.Background(), "SELECT ?g WHERE { ?g a ps2:RPG }")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, g.WriteDOT(context.Background(), &buf, res))
	assert.Contains(t, buf.String(), `"FinalFantasyX" [`)
	assert.NotContains(t, buf.String(), `"GodOfWar" [`)
}

func Test_Stats(t *testing.T) {
	g := loadPS2(t)
	s := g.Stats(context.Background())
	assert.Equal(t, 158, s.Triples)
	require.True(t, len(s.Types) >= 3)
	assert.Equal(t, "ps2:Developer", g.Compact(s.Types[0].Type))
	assert.Equal(t, 5, s.Types[0].Explicit)
	assert.Equal(t, "ps2:Genre", g.Compact(s.Types[1].Type))
	assert.Equal(t, "ps2:Protagonist", g.Compact(s.Types[2].Type))
}

func Test_Table(t *testing.T) {
	g := loadPS2(t)
	_, res, err := g.Query(context.Background(), `
SELECT ?g ?rating WHERE {
  ?g a ps2:RPG .
  ?g ps2:hasRating ?rating
}`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"?g", "?rating"},
		{"ps2:FinalFantasyX", "9.0"},
	}, g.Table(res))
}
