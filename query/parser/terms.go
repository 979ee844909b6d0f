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

package parser

import (
	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
)

// The grammar produces the types in this file. Prefixed names can't be
// expanded until the whole input is parsed, since PREFIX declarations and the
// caller's prefix table both apply, so the resolver in resolve.go turns these
// into query and rdf values afterwards.

// placed is implemented by parse results that remember where they started in
// the input, so that errors found after parsing can still report a line and
// column.
type placed interface {
	at() int
	place(offset int)
}

type position struct {
	offset int
}

func (p *position) at() int {
	return p.offset
}

func (p *position) place(offset int) {
	p.offset = offset
}

// variable is ?name.
type variable struct {
	position
	name string
}

// iriRef is <iri>.
type iriRef struct {
	position
	iri string
}

// qname is prefix:local.
type qname struct {
	position
	prefix string
	local  string
}

// literal is a string, number or boolean.
type literal struct {
	position
	value rdf.Node
}

// operator is one of <eq>, <gt>, etc.
type operator struct {
	position
	op query.Operator
}

// typeKeyword is 'a' or 'isType'.
type typeKeyword struct {
	position
	token string
}

// line is three terms. In a WHERE clause it's either a pattern or, if the
// middle term is an operator, a filter. In a HAVING clause it's a comparison.
// In an insert it's a fact.
type line struct {
	position
	subject   placed
	predicate placed
	object    placed
}

// prefixDecl is PREFIX name: <iri>.
type prefixDecl struct {
	position
	name string
	iri  string
}

// countExpr is (COUNT(?x) AS ?n) or (COUNT(*) AS ?n).
type countExpr struct {
	position
	of *variable // nil for *
	as *variable
}

// paging holds the LIMIT and OFFSET solution modifiers.
type paging struct {
	limit  uint64
	offset uint64
}

// parsedQuery is the result of the query grammar.
type parsedQuery struct {
	prefixes  []*prefixDecl
	distinct  bool
	selectAll bool
	// each item is a *variable or a *countExpr.
	selects []interface{}
	where   []*line
	groupBy []*variable
	having  []*line
	orderBy []query.OrderCondition
	paging
}

// parsedInsert is the result of the insert grammar. Each item is a
// *prefixDecl or a *line, in input order.
type parsedInsert struct {
	items []interface{}
}
