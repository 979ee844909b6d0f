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
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/cmp"
)

// group partitions the bindings by the values of the query's GROUP BY
// variables and returns one binding per partition, in order of each
// partition's first binding. The output binds the grouping variables, the
// other selected variables (taking their value from the partition's first
// binding), and the count, if the query has one. With no GROUP BY variables,
// all the bindings form a single partition; no bindings yield no partitions.
func group(in []Binding, q *Query) []Binding {
	type partition struct {
		first Binding
		count int64
	}
	var order []*partition
	byKey := make(map[string]*partition)
	keys := make([]cmp.Key, len(q.GroupBy))
	for _, b := range in {
		for i, v := range q.GroupBy {
			keys[i] = b.resolve(Var(v))
		}
		k := cmp.GetKeys(keys...)
		p, exists := byKey[k]
		if !exists {
			p = &partition{first: b}
			byKey[k] = p
			order = append(order, p)
		}
		if q.Count == nil || q.Count.Of == "" {
			p.count++
		} else if v, _ := b.Get(q.Count.Of); !v.IsNil() {
			p.count++
		}
	}
	out := make([]Binding, 0, len(order))
	for _, p := range order {
		var row Binding
		for _, v := range q.GroupBy {
			row = row.With(v, p.first.resolve(Var(v)))
		}
		for _, v := range q.Select {
			if q.isCount(v) {
				continue
			}
			if _, bound := row.Get(v); !bound {
				row = row.With(v, p.first.resolve(Var(v)))
			}
		}
		if q.Count != nil {
			row = row.With(q.Count.As, rdf.Int64(p.count))
		}
		out = append(out, row)
	}
	return out
}
