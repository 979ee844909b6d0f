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

package rdf

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	rdfvoc "github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"
)

var (
	// Type is the rdf:type predicate, which declares that a subject is an
	// instance of a class.
	Type = IRI(string(quad.IRI(rdfvoc.Type).Full()))

	// SubClassOf is the rdfs:subClassOf predicate, which declares that every
	// instance of the subject class is also an instance of the object class.
	SubClassOf = IRI(string(quad.IRI(rdfs.SubClassOf).Full()))
)

// DefaultPrefixes returns the well-known namespace prefixes, keyed by prefix
// name without the trailing colon. The caller may modify the returned map.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		strings.TrimSuffix(rdfvoc.Prefix, ":"): rdfvoc.NS,
		strings.TrimSuffix(rdfs.Prefix, ":"):   rdfs.NS,
		strings.TrimSuffix(xsd.Prefix, ":"):    xsd.NS,
	}
}

// ExpandQName resolves a prefixed name like "ps2:Game" against the given
// prefix table. It returns an error if the prefix isn't declared.
func ExpandQName(qname string, prefixes map[string]string) (Node, error) {
	idx := strings.IndexByte(qname, ':')
	if idx < 0 {
		return Nil, fmt.Errorf("%q is not a prefixed name", qname)
	}
	ns, found := prefixes[qname[:idx]]
	if !found {
		return Nil, fmt.Errorf("undeclared prefix %q in %q", qname[:idx], qname)
	}
	return IRI(ns + qname[idx+1:]), nil
}

// Compact renders the node for display. IRIs within a namespace from
// 'prefixes' are written as prefixed names, using the longest matching
// namespace; everything else is written as Node.String() would.
func Compact(n Node, prefixes map[string]string) string {
	if !n.IsIRI() {
		return n.String()
	}
	iri := n.ValIRI()
	best, bestNS := "", ""
	for name, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && name < best) {
			best, bestNS = name, ns
		}
	}
	if bestNS == "" {
		return n.String()
	}
	return best + ":" + iri[len(bestNS):]
}
