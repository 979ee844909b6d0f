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

package infer

import "github.com/ebay/kgraph/rdf"

// breadthFirst returns every node reachable from start by repeatedly following
// edges, in breadth first order. Each node is returned at most once. start is
// returned only if some path leads back to it.
func breadthFirst(start rdf.Node, edges map[rdf.Node][]rdf.Node) []rdf.Node {
	// visited keeps track of the nodes already returned to detect & stop loops.
	visited := make(map[rdf.Node]struct{})
	var res []rdf.Node
	queue := []rdf.Node{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if _, exists := visited[next]; exists {
				continue
			}
			visited[next] = struct{}{}
			res = append(res, next)
			queue = append(queue, next)
		}
	}
	return res
}
