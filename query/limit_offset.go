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

import "github.com/ebay/kgraph/rdf"

// limitAndOffset skips the first offset rows and then returns at most limit
// rows. A limit of 0 means no limit.
func limitAndOffset(rows [][]rdf.Node, limit, offset uint64) [][]rdf.Node {
	if offset >= uint64(len(rows)) {
		return rows[:0]
	}
	rows = rows[offset:]
	if limit > 0 && limit < uint64(len(rows)) {
		rows = rows[:limit]
	}
	return rows
}
