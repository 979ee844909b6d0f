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

// Package stats summarizes the contents of a graph: how many nodes carry each
// type, and how many triples use each predicate.
package stats

import (
	"bufio"
	"context"
	"io"
	"sort"

	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/errors"
	"github.com/ebay/kgraph/util/table"
	opentracing "github.com/opentracing/opentracing-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fmtr = message.NewPrinter(language.English)

// Store is the subset of the triple store that statistics read.
type Store interface {
	Match(subject, predicate, object rdf.Node) []rdf.Triple
	All() []rdf.Triple
}

// Reasoner supplies the type predicate and inferred class membership.
type Reasoner interface {
	TypePredicate() rdf.Node
	InstancesOf(class rdf.Node) []rdf.Node
}

// TypeCount is the number of nodes of a single type.
type TypeCount struct {
	Type rdf.Node
	// Explicit counts the distinct nodes declared to be of this type.
	Explicit int
	// Instances counts the distinct nodes of this type or any of its
	// subclasses.
	Instances int
}

// PredicateCount is the number of triples using a single predicate.
type PredicateCount struct {
	Predicate rdf.Node
	Count     int
}

// Stats is a summary of a graph.
type Stats struct {
	Triples    int
	Types      []TypeCount
	Predicates []PredicateCount
}

// Compute collects statistics about the store. Types are those that appear as
// the object of an explicit type triple.
func Compute(ctx context.Context, store Store, reasoner Reasoner) *Stats {
	span, _ := opentracing.StartSpanFromContext(ctx, "compute stats")
	defer span.Finish()

	all := store.All()
	res := &Stats{Triples: len(all)}
	members := make(map[rdf.Node]map[rdf.Node]struct{})
	var types []rdf.Node
	for _, t := range store.Match(rdf.Nil, reasoner.TypePredicate(), rdf.Nil) {
		m, found := members[t.Object]
		if !found {
			m = make(map[rdf.Node]struct{})
			members[t.Object] = m
			types = append(types, t.Object)
		}
		m[t.Subject] = struct{}{}
	}
	for _, c := range types {
		res.Types = append(res.Types, TypeCount{
			Type:      c,
			Explicit:  len(members[c]),
			Instances: len(reasoner.InstancesOf(c)),
		})
	}
	predicates := make(map[rdf.Node]int)
	for _, t := range all {
		predicates[t.Predicate]++
	}
	for p, c := range predicates {
		res.Predicates = append(res.Predicates, PredicateCount{Predicate: p, Count: c})
	}
	Sort(res)
	span.SetTag("types", len(res.Types))
	span.SetTag("predicates", len(res.Predicates))
	return res
}

// Sort sorts the counts in the given stats in descending order by count, with
// ties broken by name.
func Sort(stats *Stats) {
	sort.Slice(stats.Types, func(a, b int) bool {
		x, y := stats.Types[a], stats.Types[b]
		if x.Explicit != y.Explicit {
			return x.Explicit > y.Explicit
		}
		return x.Type.String() < y.Type.String()
	})
	sort.Slice(stats.Predicates, func(a, b int) bool {
		x, y := stats.Predicates[a], stats.Predicates[b]
		if x.Count != y.Count {
			return x.Count > y.Count
		}
		return x.Predicate.String() < y.Predicate.String()
	})
}

// PrettyPrint writes the stats as a pair of tables to the supplied writer. IRIs
// are abbreviated using 'prefixes', which may be nil.
func PrettyPrint(ctx context.Context, w io.Writer, stats *Stats, prefixes map[string]string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "write stats")
	defer span.Finish()
	bw := bufio.NewWriter(w)
	count := func(c int) string {
		return fmtr.Sprintf("%d", c)
	}
	name := func(n rdf.Node) string {
		return rdf.Compact(n, prefixes)
	}
	fmtr.Fprintf(bw, "%d triples\n\n", stats.Triples)

	t := [][]string{{"Type", "Explicit", "Instances"}}
	for _, c := range stats.Types {
		t = append(t, []string{name(c.Type), count(c.Explicit), count(c.Instances)})
	}
	err1 := table.PrettyPrint(bw, t, table.HeaderRow|table.SkipEmpty|table.JustifyNumbers)
	bw.WriteRune('\n')

	t = [][]string{{"Predicate", "Count"}}
	for _, p := range stats.Predicates {
		t = append(t, []string{name(p.Predicate), count(p.Count)})
	}
	err2 := table.PrettyPrint(bw, t, table.HeaderRow|table.SkipEmpty|table.JustifyNumbers)
	return errors.Any(err1, err2, bw.Flush())
}
