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
	"sort"
	"strings"

	"github.com/ebay/kgraph/rdf"
)

// orderBy sorts the bindings in place by each condition in turn. The sort is
// stable, so rows that compare equal on every key keep their input order.
//
// Each key is compared numerically if every row's value for it can be coerced
// to a number, and by lexical form otherwise. Unbound values sort first.
func orderBy(rows []Binding, conditions []OrderCondition) {
	if len(conditions) == 0 || len(rows) < 2 {
		return
	}
	comparers := make([]func(a, b Binding) int, 0, len(conditions))
	for _, cond := range conditions {
		compare := compareLexical
		if allNumeric(rows, cond.On) {
			compare = compareNumeric
		}
		on := cond.On
		switch cond.Direction {
		case SortDesc:
			comparers = append(comparers, func(a, b Binding) int {
				return compare(b.resolve(Var(on)), a.resolve(Var(on)))
			})
		default:
			comparers = append(comparers, func(a, b Binding) int {
				return compare(a.resolve(Var(on)), b.resolve(Var(on)))
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, comp := range comparers {
			result := comp(rows[i], rows[j])
			if result < 0 {
				return true
			} else if result > 0 {
				return false
			}
		}
		return false
	})
}

// allNumeric returns true if the variable's value in every row can be coerced
// to a number.
func allNumeric(rows []Binding, variable string) bool {
	for _, b := range rows {
		if _, ok := b.resolve(Var(variable)).Number(); !ok {
			return false
		}
	}
	return true
}

// compareNumeric returns an integer comparing two values that can be coerced
// to numbers. The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func compareNumeric(a, b rdf.Node) int {
	x, _ := a.Number()
	y, _ := b.Number()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// compareLexical returns an integer comparing the lexical forms of two
// values, with unbound values first.
func compareLexical(a, b rdf.Node) int {
	if a.IsNil() || b.IsNil() {
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(a.Lexical(), b.Lexical())
}
