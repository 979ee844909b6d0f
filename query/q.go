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

// Package query evaluates conjunctive graph pattern queries against a triple
// store, consulting a class hierarchy reasoner for type patterns. A Query is
// built directly or parsed from text by the query/parser package.
package query

import (
	"context"
	"time"

	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Store is the subset of the triple store that queries read.
type Store interface {
	// Match returns the triples matching the pattern in insertion order, with
	// rdf.Nil as a wildcard.
	Match(subject, predicate, object rdf.Node) []rdf.Triple
}

// Reasoner answers type membership questions for TypePatterns.
type Reasoner interface {
	TypesOf(node rdf.Node) []rdf.Node
	IsInstanceOf(node, class rdf.Node) bool
	InstancesOf(class rdf.Node) []rdf.Node
	TypedNodes() []rdf.Node
}

// Engine evaluates queries. It holds no per-query state, and it can be used
// concurrently to execute queries as long as the Store and Reasoner allow
// concurrent reads.
type Engine struct {
	store    Store
	reasoner Reasoner
}

// New returns an Engine that reads from the given store and reasoner.
func New(store Store, reasoner Reasoner) *Engine {
	return &Engine{store: store, reasoner: reasoner}
}

// Execute validates and evaluates the query. It returns a *DefinitionError if
// the query is invalid. Data that's missing from the store is never an error;
// it just leads to fewer rows.
//
// Evaluation proceeds in stages: the WHERE patterns are joined in order, then
// filters are applied, then grouping, COUNT and HAVING, then ORDER BY, and
// finally the rows are projected to the selected columns, made distinct, and
// paged with OFFSET and LIMIT.
func (e *Engine) Execute(ctx context.Context, q *Query) (*ResultSet, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "execute query")
	tracing.UpdateMetric(span, metrics.executeDurationSeconds)
	defer span.Finish()
	start := time.Now()

	if err := q.Validate(); err != nil {
		metrics.definitionErrors.Inc()
		span.SetTag("error", true)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bindings := []Binding{{}}
	for _, p := range q.Where {
		bindings = e.applyPattern(bindings, p)
		if len(bindings) == 0 {
			break
		}
	}
	joined := len(bindings)
	bindings = applyFilters(bindings, q.Filters)
	if q.grouped() {
		bindings = group(bindings, q)
		bindings = applyFilters(bindings, q.Having)
	}
	orderBy(bindings, q.OrderBy)
	res := project(bindings, q.Select)
	if q.Distinct {
		res.Rows = distinct(res.Rows)
	}
	res.Rows = limitAndOffset(res.Rows, q.Limit, q.Offset)

	metrics.executedTotal.Inc()
	metrics.resultRows.Observe(float64(len(res.Rows)))
	span.SetTag("rows", len(res.Rows))
	log.WithFields(log.Fields{
		"patterns": len(q.Where),
		"joined":   joined,
		"rows":     len(res.Rows),
		"duration": time.Since(start),
	}).Debug("Executed query")
	return res, nil
}
