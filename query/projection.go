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

// project returns a ResultSet with one column per selected variable and one row
// per binding. Unbound variables yield rdf.Nil.
func project(in []Binding, columns []string) *ResultSet {
	res := &ResultSet{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]rdf.Node, len(in)),
	}
	for i, b := range in {
		row := make([]rdf.Node, len(columns))
		for c, v := range columns {
			row[c] = b.resolve(Var(v))
		}
		res.Rows[i] = row
	}
	return res
}

// distinct returns the rows with duplicates removed, keeping the first
// occurrence of each.
func distinct(rows [][]rdf.Node) [][]rdf.Node {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0:0]
	keys := []cmp.Key(nil)
	for _, row := range rows {
		keys = keys[:0]
		for _, v := range row {
			keys = append(keys, v)
		}
		k := cmp.GetKeys(keys...)
		if _, exists := seen[k]; exists {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}
