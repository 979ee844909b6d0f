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

// Package kg assembles a queryable knowledge graph from configuration: a
// triple store, a reasoner over its class hierarchy, a query engine and the
// export settings. Both the command line tool and the HTTP server use it.
package kg

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ebay/kgraph/config"
	"github.com/ebay/kgraph/export"
	"github.com/ebay/kgraph/infer"
	"github.com/ebay/kgraph/loader"
	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/query/parser"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/stats"
	"github.com/ebay/kgraph/store"
	"github.com/ebay/kgraph/util/parallel"
	log "github.com/sirupsen/logrus"
)

// Graph is a loaded knowledge graph. It's safe for concurrent use. Queries,
// exports and stats hold a read lock for their whole evaluation, and loads and
// inserts hold the write lock, so a reader never sees part of a batch of new
// triples or a store that changed between two pattern lookups. Writes made
// directly to Store bypass this lock.
type Graph struct {
	lock     sync.RWMutex
	Store    *store.Store
	Reasoner *infer.Reasoner
	Engine   *query.Engine
	// Prefixes are available to queries and TSV input. Read only.
	Prefixes map[string]string
	// Export holds the DOT output settings. Read only.
	Export export.Options
}

// New returns an empty graph configured by 'cfg'.
func New(cfg *config.KGraph) (*Graph, error) {
	var vocab infer.Options
	var err error
	if cfg.Vocabulary.TypePredicate != "" {
		if vocab.TypePredicate, err = cfg.IRI(cfg.Vocabulary.TypePredicate); err != nil {
			return nil, fmt.Errorf("vocabulary: %v", err)
		}
	}
	if cfg.Vocabulary.SubClassPredicate != "" {
		if vocab.SubClassPredicate, err = cfg.IRI(cfg.Vocabulary.SubClassPredicate); err != nil {
			return nil, fmt.Errorf("vocabulary: %v", err)
		}
	}
	exportOpts, err := ExportOptions(cfg)
	if err != nil {
		return nil, err
	}
	s := store.New()
	reasoner := infer.New(s, vocab)
	exportOpts.TypePredicate = reasoner.TypePredicate()
	return &Graph{
		Store:    s,
		Reasoner: reasoner,
		Engine:   query.New(s, reasoner),
		Prefixes: cfg.AllPrefixes(),
		Export:   exportOpts,
	}, nil
}

// ExportOptions converts the export section of the configuration, resolving
// its prefixed names. Unset values keep export.DefaultOptions.
func ExportOptions(cfg *config.KGraph) (export.Options, error) {
	opts := export.DefaultOptions()
	e := cfg.Export
	if e.GraphName != "" {
		opts.GraphName = e.GraphName
	}
	if e.RankDir != "" {
		opts.RankDir = e.RankDir
	}
	if e.FontName != "" {
		opts.FontName = e.FontName
	}
	if e.DefaultColor != "" {
		opts.DefaultColor = e.DefaultColor
	}
	if e.UnknownType != "" {
		opts.UnknownType = e.UnknownType
	}
	var err error
	if opts.LabelPredicates, err = cfg.IRIs(e.LabelPredicates); err != nil {
		return opts, fmt.Errorf("export label predicates: %v", err)
	}
	if opts.ExcludePredicates, err = cfg.IRIs(e.ExcludePredicates); err != nil {
		return opts, fmt.Errorf("export exclude predicates: %v", err)
	}
	colors := func(into, from map[string]string) error {
		for k, color := range from {
			n, err := cfg.IRI(k)
			if err != nil {
				return fmt.Errorf("export colors: %v", err)
			}
			into[n.ValIRI()] = color
		}
		return nil
	}
	if err := colors(opts.TypeColors, e.TypeColors); err != nil {
		return opts, err
	}
	if err := colors(opts.EdgeColors, e.EdgeColors); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadOptions resolves tsv input with the graph's prefixes, and reads 'a' as
// the configured type predicate.
func (g *Graph) loadOptions() loader.Options {
	return loader.Options{
		Prefixes:      g.Prefixes,
		TypePredicate: g.Reasoner.TypePredicate(),
	}
}

// LoadFile reads triples from the named file and adds them to the store. The
// format is detected from the filename if it's empty. It returns the number of
// triples that weren't already present.
func (g *Graph) LoadFile(ctx context.Context, filename string, format loader.Format) (int, error) {
	triples, err := loader.LoadFile(ctx, filename, format, g.loadOptions())
	if err != nil {
		return 0, err
	}
	g.lock.Lock()
	added := g.Store.AddAll(triples)
	g.lock.Unlock()
	log.WithFields(log.Fields{
		"file":    filename,
		"read":    len(triples),
		"added":   added,
		"triples": g.Store.Len(),
	}).Info("Loaded data")
	return added, nil
}

// LoadProgress is called as each file given to LoadFiles finishes parsing.
// 'file' indexes the filenames; 'read' is the number of triples parsed.
// It may be called concurrently.
type LoadProgress func(file int, read int, err error)

// LoadFiles parses the named files concurrently, then adds their triples to
// the store in the order of the filenames. If any file fails to load, no
// triples are added. It returns the number of triples that weren't already
// present. 'progress' may be nil.
func (g *Graph) LoadFiles(ctx context.Context, filenames []string, format loader.Format, progress LoadProgress) (int, error) {
	parsed := make([][]rdf.Triple, len(filenames))
	err := parallel.InvokeN(ctx, len(filenames), func(ctx context.Context, i int) error {
		triples, err := loader.LoadFile(ctx, filenames[i], format, g.loadOptions())
		parsed[i] = triples
		if progress != nil {
			progress(i, len(triples), err)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	added := 0
	for i, triples := range parsed {
		n := g.Store.AddAll(triples)
		added += n
		log.WithFields(log.Fields{
			"file":  filenames[i],
			"read":  len(triples),
			"added": n,
		}).Info("Loaded data")
	}
	return added, nil
}

// Insert reads triples in the given format and adds them to the store. Either
// every triple is added, or, upon a parse error, none are. It returns the
// number of triples that weren't already present.
func (g *Graph) Insert(ctx context.Context, r io.Reader, source string, format loader.Format) (int, error) {
	triples, err := loader.Load(ctx, r, source, format, g.loadOptions())
	if err != nil {
		return 0, err
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.Store.AddAll(triples), nil
}

// Parse parses a query using the graph's prefixes.
func (g *Graph) Parse(text string) (*query.Query, error) {
	return parser.Parse(text, g.Prefixes)
}

// Query parses and executes a query. It returns a *parser.ParseError or a
// *query.DefinitionError if the query is malformed.
func (g *Graph) Query(ctx context.Context, text string) (*query.Query, *query.ResultSet, error) {
	q, err := g.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	g.lock.RLock()
	res, err := g.Engine.Execute(ctx, q)
	g.lock.RUnlock()
	if err != nil {
		return q, nil, err
	}
	return q, res, nil
}

// WriteDOT writes the whole graph, or if 'res' is not nil, the subgraph
// spanned by a query result, in the DOT language.
func (g *Graph) WriteDOT(ctx context.Context, w io.Writer, res *query.ResultSet) error {
	exporter := export.New(g.Export)
	g.lock.RLock()
	defer g.lock.RUnlock()
	if res == nil {
		return exporter.WriteStore(ctx, w, g.Store)
	}
	return exporter.WriteResult(ctx, w, g.Store, res)
}

// Stats summarizes the graph.
func (g *Graph) Stats(ctx context.Context) *stats.Stats {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return stats.Compute(ctx, g.Store, g.Reasoner)
}

// Compact abbreviates a node for display using the graph's prefixes.
func (g *Graph) Compact(n rdf.Node) string {
	return rdf.Compact(n, g.Prefixes)
}

// Table converts a result set to text for display: a header row of variable
// names, then IRIs abbreviated with the graph's prefixes and literals in
// their lexical form. Unbound values are empty.
func (g *Graph) Table(res *query.ResultSet) [][]string {
	t := res.Strings()
	for r, row := range res.Rows {
		for c, v := range row {
			if v.IsIRI() {
				t[r+1][c] = g.Compact(v)
			}
		}
	}
	return t
}
