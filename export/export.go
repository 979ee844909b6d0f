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

// Package export renders the contents of a triple store, or the resources in a
// query result, as a Graphviz digraph. The output is determined entirely by
// the store's insertion order and the Options, so rendering the same store
// twice produces identical bytes.
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Store is the subset of the triple store that the exporter reads.
type Store interface {
	Match(subject, predicate, object rdf.Node) []rdf.Triple
	All() []rdf.Triple
}

// Exporter writes DOT descriptions. It holds only its Options, and it can be
// used concurrently.
type Exporter struct {
	opts Options
}

// New returns an Exporter using the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// WriteStore renders every triple in 'store' whose object is an IRI as an
// edge, in store order. Each node gets a statement before the first edge that
// touches it. Triples with literal objects only contribute to node labels.
func (e *Exporter) WriteStore(ctx context.Context, w io.Writer, store Store) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "export store")
	tracing.UpdateMetric(span, metrics.durationSeconds)
	defer span.Finish()

	g := e.newGraph(w, store)
	g.header()
	for _, t := range store.All() {
		if !t.Object.IsIRI() || e.opts.excluded(t.Predicate) {
			continue
		}
		g.node(t.Subject)
		g.node(t.Object)
		g.edge(t)
	}
	return g.finish(span)
}

// WriteResult renders the IRIs bound anywhere in 'rs' as nodes, in row-major
// order of first appearance, followed by the store's edges between any two of
// them, in store order.
func (e *Exporter) WriteResult(ctx context.Context, w io.Writer, store Store, rs *query.ResultSet) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "export result")
	tracing.UpdateMetric(span, metrics.durationSeconds)
	defer span.Finish()

	g := e.newGraph(w, store)
	g.header()
	for _, row := range rs.Rows {
		for _, v := range row {
			if v.IsIRI() {
				g.node(v)
			}
		}
	}
	for _, t := range store.All() {
		if !t.Object.IsIRI() || e.opts.excluded(t.Predicate) {
			continue
		}
		if g.emitted(t.Subject) && g.emitted(t.Object) {
			g.edge(t)
		}
	}
	return g.finish(span)
}

func (e *Exporter) newGraph(w io.Writer, store Store) *graph {
	return &graph{
		opts:  &e.opts,
		store: store,
		out:   bufio.NewWriter(w),
		nodes: make(map[rdf.Node]struct{}),
		start: time.Now(),
	}
}

// graph accumulates the statements of one export.
type graph struct {
	opts  *Options
	store Store
	// Write errors are sticky in bufio.Writer, and reported by finish.
	out       *bufio.Writer
	nodes     map[rdf.Node]struct{}
	edgeCount int
	start     time.Time
}

func (g *graph) header() {
	fmt.Fprintf(g.out, "digraph %s {\n", quote(g.opts.GraphName))
	fmt.Fprintf(g.out, "    rankdir=%s;\n", quote(g.opts.RankDir))
	g.out.WriteString("    node [shape=box, style=filled];\n")
	fmt.Fprintf(g.out, "    graph [bgcolor=white, fontname=%s, fontsize=16];\n", quote(g.opts.FontName))
	fmt.Fprintf(g.out, "    edge [fontname=%s, fontsize=10];\n\n", quote(g.opts.FontName))
}

func (g *graph) emitted(n rdf.Node) bool {
	_, found := g.nodes[n]
	return found
}

// node writes a node statement the first time 'n' is seen.
func (g *graph) node(n rdf.Node) {
	if g.emitted(n) {
		return
	}
	g.nodes[n] = struct{}{}
	typ := g.nodeType(n)
	color := g.opts.DefaultColor
	tooltip := g.opts.UnknownType
	if !typ.IsNil() {
		if c, found := g.opts.TypeColors[typ.ValIRI()]; found {
			color = c
		}
		tooltip = typ.ValIRI()
		if frag, ok := typ.Fragment(); ok {
			tooltip = frag
		}
	}
	fmt.Fprintf(g.out, "    %s [label=%s, fillcolor=%s, tooltip=%s];\n",
		quote(nodeID(n)), quote(g.label(n)), quote(color), quote(tooltip))
}

func (g *graph) edge(t rdf.Triple) {
	g.edgeCount++
	fmt.Fprintf(g.out, "    %s -> %s [label=%s",
		quote(nodeID(t.Subject)), quote(nodeID(t.Object)), quote(t.Predicate.LocalName()))
	if color, found := g.opts.EdgeColors[t.Predicate.ValIRI()]; found {
		fmt.Fprintf(g.out, ", color=%s", quote(color))
	}
	g.out.WriteString("];\n")
}

func (g *graph) finish(span opentracing.Span) error {
	g.out.WriteString("}\n")
	if err := g.out.Flush(); err != nil {
		return fmt.Errorf("writing graph: %v", err)
	}
	metrics.nodesWritten.Add(float64(len(g.nodes)))
	metrics.edgesWritten.Add(float64(g.edgeCount))
	span.SetTag("nodes", len(g.nodes))
	span.SetTag("edges", g.edgeCount)
	log.WithFields(log.Fields{
		"nodes":    len(g.nodes),
		"edges":    g.edgeCount,
		"duration": time.Since(g.start),
	}).Debug("Exported graph")
	return nil
}

// nodeType returns the lexicographically smallest IRI the node is explicitly
// declared to be an instance of, or rdf.Nil if it has none.
func (g *graph) nodeType(n rdf.Node) rdf.Node {
	res := rdf.Nil
	for _, t := range g.store.Match(n, g.opts.TypePredicate, rdf.Nil) {
		if t.Object.IsIRI() && (res.IsNil() || t.Object.ValIRI() < res.ValIRI()) {
			res = t.Object
		}
	}
	return res
}

// label returns the node's display name: the first literal value of the first
// label predicate it has, or else its id.
func (g *graph) label(n rdf.Node) string {
	for _, p := range g.opts.LabelPredicates {
		for _, t := range g.store.Match(n, p, rdf.Nil) {
			if t.Object.IsLiteral() {
				return t.Object.Lexical()
			}
		}
	}
	return nodeID(n)
}

// nodeID returns the IRI's fragment if it has a non-empty one. Otherwise every
// character of the IRI other than an ASCII letter or digit is replaced with an
// underscore.
func nodeID(n rdf.Node) string {
	if frag, ok := n.Fragment(); ok && frag != "" {
		return frag
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, n.Lexical())
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", `\n`)

// quote returns 's' as a DOT double-quoted string.
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
