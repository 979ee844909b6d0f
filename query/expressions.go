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
	"fmt"
	"strings"

	"github.com/ebay/kgraph/rdf"
)

// applyFilters returns the bindings for which every comparison holds, in their
// original order.
func applyFilters(in []Binding, filters []Comparison) []Binding {
	if len(filters) == 0 {
		return in
	}
	out := in[:0:0]
	for _, b := range in {
		keep := true
		for _, f := range filters {
			if !evaluate(b, f) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, b)
		}
	}
	return out
}

// evaluate returns the result of the comparison under the binding. A side
// that's unbound, or that can't be coerced to a number for an ordering
// operator, makes the comparison false.
func evaluate(b Binding, c Comparison) bool {
	left := b.resolve(c.Left)
	right := b.resolve(c.Right)
	if left.IsNil() || right.IsNil() {
		return false
	}
	switch c.Op {
	case OpEqual:
		return equal(left, right)
	case OpNotEqual:
		return !equal(left, right)
	case OpContains:
		return strings.Contains(left.Lexical(), right.Lexical())
	}
	l, lok := left.Number()
	r, rok := right.Number()
	if !lok || !rok {
		return false
	}
	switch c.Op {
	case OpLess:
		return l < r
	case OpLessOrEqual:
		return l <= r
	case OpGreater:
		return l > r
	case OpGreaterOrEqual:
		return l >= r
	default:
		panic(fmt.Sprintf("Unexpected operator %v", c.Op))
	}
}

// equal compares numerically if both values can be coerced to numbers, and
// otherwise by lexical form. An IRI is never equal to a literal.
func equal(a, b rdf.Node) bool {
	if a.IsIRI() != b.IsIRI() {
		return false
	}
	if a.IsIRI() {
		return a == b
	}
	if x, ok := a.Number(); ok {
		if y, ok := b.Number(); ok {
			return x == y
		}
	}
	return a.Lexical() == b.Lexical()
}
