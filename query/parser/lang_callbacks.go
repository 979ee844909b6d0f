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
	"fmt"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/vektah/goparsify"
)

func newTypeKeyword(token string) func() interface{} {
	return func() interface{} {
		return &typeKeyword{token: token}
	}
}

func boolLiteral(value bool) func() interface{} {
	return func() interface{} {
		return &literal{value: rdf.Bool(value)}
	}
}

func literalNumber(n *goparsify.Result) {
	switch v := n.Result.(type) {
	case float64:
		n.Result = &literal{value: rdf.Float64(v)}
	case int64:
		n.Result = &literal{value: rdf.Int64(v)}
	default:
		panic(fmt.Sprintf("unsupported number literal: '%s' %v", n.Token, v))
	}
}

func literalString(n *goparsify.Result) {
	n.Result = &literal{value: rdf.String(n.Token)}
}

func bindOpResult(op query.Operator) func(*goparsify.Result) {
	return func(n *goparsify.Result) {
		n.Result = &operator{op: op}
	}
}

func termLine(n *goparsify.Result) {
	n.Result = &line{
		position:  position{n.Child[0].Result.(placed).at()},
		subject:   n.Child[0].Result.(placed),
		predicate: n.Child[2].Result.(placed),
		object:    n.Child[3].Result.(placed),
	}
}

func prefixDeclaration(n *goparsify.Result) {
	n.Result = &prefixDecl{
		name: n.Child[2].Token,
		iri:  n.Child[3].Result.(*iriRef).iri,
	}
}

func child(idx int) func(*goparsify.Result) {
	return func(n *goparsify.Result) {
		n.Result = n.Child[idx].Result
	}
}

func limitOffset(n *goparsify.Result) {
	res := paging{limit: n.Child[0].Result.(uint64)}
	if n.Child[1].Result != nil {
		res.offset = n.Child[1].Result.(uint64)
	}
	n.Result = res
}

func offsetLimit(n *goparsify.Result) {
	res := paging{offset: n.Child[0].Result.(uint64)}
	if n.Child[1].Result != nil {
		res.limit = n.Child[1].Result.(uint64)
	}
	n.Result = res
}

func orderBy(direction query.SortDirection) func(*goparsify.Result) {
	return func(n *goparsify.Result) {
		n.Result = query.OrderCondition{
			On:        n.Result.(*variable).name,
			Direction: direction,
		}
	}
}

func orderBys(n *goparsify.Result) {
	conditions := n.Child[4]
	res := make([]query.OrderCondition, 0, len(conditions.Child))
	for _, child := range conditions.Child {
		res = append(res, child.Result.(query.OrderCondition))
	}
	n.Result = res
}

func groupBy(n *goparsify.Result) {
	vars := n.Child[4]
	res := make([]*variable, 0, len(vars.Child))
	for _, child := range vars.Child {
		res = append(res, child.Result.(*variable))
	}
	n.Result = res
}

func having(n *goparsify.Result) {
	n.Result = lines(&n.Child[2])
}

func whereLines(n *goparsify.Result) {
	n.Result = lines(&n.Child[1])
}

func lines(n *goparsify.Result) []*line {
	res := make([]*line, 0, len(n.Child))
	for _, child := range n.Child {
		res = append(res, child.Result.(*line))
	}
	return res
}

func countExpression(n *goparsify.Result) {
	res := &countExpr{
		position: position{n.Child[7].Result.(*variable).at()},
		as:       n.Child[7].Result.(*variable),
	}
	if n.Child[4].Token != "*" {
		res.of = n.Child[4].Result.(*variable)
	}
	n.Result = res
}

// selectItems is the result of the SELECT expressions. If all is set, every
// variable in the WHERE clause is selected.
type selectItems struct {
	all bool
	// each item is a *variable or a *countExpr.
	items []interface{}
}

func selectExprs(n *goparsify.Result) {
	if n.Token == "*" {
		n.Result = selectItems{all: true}
		return
	}
	res := selectItems{items: make([]interface{}, 0, len(n.Child))}
	for _, child := range n.Child {
		res.items = append(res.items, child.Result)
	}
	n.Result = res
}

func selectQuery(n *goparsify.Result) {
	q := &parsedQuery{
		distinct: n.Child[2].Token != "",
		where:    n.Child[4].Result.([]*line),
	}
	for _, child := range n.Child[0].Child {
		q.prefixes = append(q.prefixes, child.Result.(*prefixDecl))
	}
	items := n.Child[3].Result.(selectItems)
	q.selectAll = items.all
	q.selects = items.items
	// these are optional, so might be nil
	if n.Child[5].Result != nil {
		q.groupBy = n.Child[5].Result.([]*variable)
	}
	if n.Child[6].Result != nil {
		q.having = n.Child[6].Result.([]*line)
	}
	if n.Child[7].Result != nil {
		q.orderBy = n.Child[7].Result.([]query.OrderCondition)
	}
	if n.Child[8].Result != nil {
		q.paging = n.Child[8].Result.(paging)
	}
	n.Result = q
}

func insertItems(n *goparsify.Result) {
	res := &parsedInsert{items: make([]interface{}, 0, len(n.Child))}
	for _, child := range n.Child {
		res.items = append(res.items, child.Result)
	}
	n.Result = res
}
