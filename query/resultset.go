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
)

// ResultSet is the output of a query: a table of values with one named column
// per selected variable.
type ResultSet struct {
	Columns []string
	Rows    [][]rdf.Node
}

// Len returns the number of rows.
func (r *ResultSet) Len() int {
	return len(r.Rows)
}

// Column returns the index of the named column, or -1 if there's no such
// column.
func (r *ResultSet) Column(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the value of the named column in the given row. It returns
// rdf.Nil if there's no such column.
func (r *ResultSet) Value(row int, name string) rdf.Node {
	c := r.Column(name)
	if c < 0 {
		return rdf.Nil
	}
	return r.Rows[row][c]
}

// Strings returns the table of values as text, with a header row of column
// names followed by the lexical form of each value. Unbound values are empty.
func (r *ResultSet) Strings() [][]string {
	res := make([][]string, 0, len(r.Rows)+1)
	header := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = "?" + c
	}
	res = append(res, header)
	for _, row := range r.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = v.Lexical()
		}
		res = append(res, line)
	}
	return res
}
