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

package export

import (
	"github.com/ebay/kgraph/rdf"
)

// Options control how the graph is rendered. The zero value isn't useful; start
// from DefaultOptions.
type Options struct {
	// GraphName is the name of the digraph.
	GraphName string
	// RankDir is the Graphviz rankdir attribute, like "LR" or "TB".
	RankDir string
	// FontName is used for the graph and edge labels.
	FontName string
	// TypePredicate identifies the explicit type declarations that pick a
	// node's color and tooltip.
	TypePredicate rdf.Node
	// LabelPredicates are tried in order to find a node's display name. The
	// first literal object found is used. Nodes without one are labeled with
	// their id.
	LabelPredicates []rdf.Node
	// TypeColors maps a type IRI to a fill color.
	TypeColors map[string]string
	// DefaultColor fills nodes with no type, or whose type isn't in TypeColors.
	DefaultColor string
	// UnknownType is the tooltip of nodes with no type.
	UnknownType string
	// EdgeColors maps a predicate IRI to the color of its edges. Edges whose
	// predicate isn't listed use the Graphviz default.
	EdgeColors map[string]string
	// ExcludePredicates lists predicates whose triples aren't drawn as edges.
	ExcludePredicates []rdf.Node
}

// DefaultOptions returns the options used when nothing is configured. The
// caller may modify the returned value.
func DefaultOptions() Options {
	return Options{
		GraphName:     "KnowledgeGraph",
		RankDir:       "LR",
		FontName:      "Arial",
		TypePredicate: rdf.Type,
		TypeColors:    make(map[string]string),
		EdgeColors:    make(map[string]string),
		DefaultColor:  "#CCCCCC",
		UnknownType:   "Unknown",
	}
}

func (o *Options) excluded(predicate rdf.Node) bool {
	for _, p := range o.ExcludePredicates {
		if p == predicate {
			return true
		}
	}
	return false
}
