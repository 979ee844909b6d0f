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
)

// resolver turns the grammar's results into query and rdf values. Its errors
// point back into the input.
type resolver struct {
	p        *parser
	typ      string
	prefixes map[string]string
	// typePredicate is what 'a' means in insert lines.
	typePredicate rdf.Node
}

func newResolver(p *parser, typ string, prefixes map[string]string) *resolver {
	r := &resolver{p: p, typ: typ, prefixes: make(map[string]string, len(prefixes)), typePredicate: rdf.Type}
	for name, iri := range prefixes {
		r.prefixes[name] = iri
	}
	return r
}

func (r *resolver) errorAt(at placed, format string, args ...interface{}) error {
	return r.p.errorAt(r.typ, at.at(), format, args...)
}

// node resolves an IRI, prefixed name or literal.
func (r *resolver) node(t placed) (rdf.Node, error) {
	switch t := t.(type) {
	case *iriRef:
		return rdf.IRI(t.iri), nil
	case *qname:
		ns, found := r.prefixes[t.prefix]
		if !found {
			return rdf.Nil, r.errorAt(t, "undeclared prefix '%s:'", t.prefix)
		}
		return rdf.IRI(ns + t.local), nil
	case *literal:
		return t.value, nil
	}
	return rdf.Nil, r.errorAt(t, "%s not allowed here", describe(t))
}

// term resolves a variable or anything node accepts.
func (r *resolver) term(t placed) (query.Term, error) {
	if v, ok := t.(*variable); ok {
		return query.Var(v.name), nil
	}
	n, err := r.node(t)
	if err != nil {
		return query.Term{}, err
	}
	return query.Const(n), nil
}

func (r *resolver) terms(items ...placed) ([]query.Term, error) {
	res := make([]query.Term, len(items))
	for i, p := range items {
		var err error
		if res[i], err = r.term(p); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func describe(t placed) string {
	switch t := t.(type) {
	case *variable:
		return "variable ?" + t.name
	case *operator:
		return "operator " + t.op.String()
	case *typeKeyword:
		return fmt.Sprintf("'%s'", t.token)
	case *literal:
		return "literal " + t.value.String()
	case *iriRef:
		return "IRI <" + t.iri + ">"
	case *qname:
		return t.prefix + ":" + t.local
	default:
		return fmt.Sprintf("%T", t)
	}
}

// comparison resolves a line whose middle term is an operator.
func (r *resolver) comparison(l *line) (query.Comparison, error) {
	op, ok := l.predicate.(*operator)
	if !ok {
		return query.Comparison{}, r.errorAt(l.predicate, "expected an operator like <gt>, but got %s", describe(l.predicate))
	}
	sides, err := r.terms(l.subject, l.object)
	if err != nil {
		return query.Comparison{}, err
	}
	return query.Comparison{Left: sides[0], Op: op.op, Right: sides[1]}, nil
}

func (r *resolver) query(parsed *parsedQuery) (*query.Query, error) {
	q := &query.Query{
		Distinct: parsed.distinct,
		Limit:    parsed.limit,
		Offset:   parsed.offset,
		OrderBy:  parsed.orderBy,
	}
	for _, l := range parsed.where {
		switch l.predicate.(type) {
		case *operator:
			c, err := r.comparison(l)
			if err != nil {
				return nil, err
			}
			q.Filters = append(q.Filters, c)
		case *typeKeyword:
			terms, err := r.terms(l.subject, l.object)
			if err != nil {
				return nil, err
			}
			q.Where = append(q.Where, &query.TypePattern{Subject: terms[0], Class: terms[1]})
		default:
			terms, err := r.terms(l.subject, l.predicate, l.object)
			if err != nil {
				return nil, err
			}
			q.Where = append(q.Where, &query.TriplePattern{
				Subject: terms[0], Predicate: terms[1], Object: terms[2],
			})
		}
	}
	for _, item := range parsed.selects {
		switch item := item.(type) {
		case *variable:
			q.Select = append(q.Select, item.name)
		case *countExpr:
			if q.Count != nil {
				return nil, r.errorAt(item, "at most one COUNT in SELECT")
			}
			q.Count = &query.Count{As: item.as.name}
			if item.of != nil {
				q.Count.Of = item.of.name
			}
			q.Select = append(q.Select, item.as.name)
		default:
			return nil, fmt.Errorf("invalid select item type: %T", item)
		}
	}
	if parsed.selectAll {
		q.Select = q.PatternVariables()
	}
	for _, v := range parsed.groupBy {
		q.GroupBy = append(q.GroupBy, v.name)
	}
	for _, l := range parsed.having {
		c, err := r.comparison(l)
		if err != nil {
			return nil, err
		}
		q.Having = append(q.Having, c)
	}
	return q, nil
}

// fact resolves an insert line into a triple.
func (r *resolver) fact(l *line) (rdf.Triple, error) {
	subject, err := r.node(l.subject)
	if err != nil {
		return rdf.Triple{}, err
	}
	if !subject.IsIRI() {
		return rdf.Triple{}, r.errorAt(l.subject, "expected subject to be an IRI, but got %s", describe(l.subject))
	}
	predicate := r.typePredicate
	if _, isType := l.predicate.(*typeKeyword); !isType {
		if predicate, err = r.node(l.predicate); err != nil {
			return rdf.Triple{}, err
		}
		if !predicate.IsIRI() {
			return rdf.Triple{}, r.errorAt(l.predicate, "expected predicate to be an IRI, but got %s", describe(l.predicate))
		}
	}
	object, err := r.node(l.object)
	if err != nil {
		return rdf.Triple{}, err
	}
	t := rdf.T(subject, predicate, object)
	if err := t.Validate(); err != nil {
		return rdf.Triple{}, r.errorAt(l, "%v", err)
	}
	return t, nil
}
