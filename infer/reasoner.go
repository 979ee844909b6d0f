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

import (
	"sync"

	"github.com/ebay/kgraph/rdf"
	log "github.com/sirupsen/logrus"
)

// Facts is the subset of the store that the Reasoner reads.
type Facts interface {
	// Match returns the triples matching the pattern in insertion order, with
	// rdf.Nil as a wildcard.
	Match(subject, predicate, object rdf.Node) []rdf.Triple
	// Generation changes whenever the set of triples changes.
	Generation() uint64
}

// Options configure which predicates define the hierarchy.
type Options struct {
	// TypePredicate relates an entity to its class. Defaults to rdf.Type.
	TypePredicate rdf.Node
	// SubClassPredicate relates a class to a direct superclass. Defaults to
	// rdf.SubClassOf.
	SubClassPredicate rdf.Node
}

// Reasoner answers type membership questions using the explicit type and
// subclass facts in a store plus the transitive closure of the class hierarchy.
// The closure is computed lazily per class and cached until the store changes.
// A Reasoner is safe for concurrent use.
type Reasoner struct {
	facts Facts
	opts  Options

	lock sync.Mutex
	// built is set once the adjacency maps have been loaded at generation.
	built      bool
	generation uint64
	// superclasses maps a class to its direct superclasses.
	superclasses map[rdf.Node][]rdf.Node
	// subclasses maps a class to its direct subclasses.
	subclasses  map[rdf.Node][]rdf.Node
	ancestors   map[rdf.Node][]rdf.Node
	descendants map[rdf.Node][]rdf.Node
}

// New returns a Reasoner over the given facts. Zero fields in opts take their
// defaults.
func New(facts Facts, opts Options) *Reasoner {
	if opts.TypePredicate.IsNil() {
		opts.TypePredicate = rdf.Type
	}
	if opts.SubClassPredicate.IsNil() {
		opts.SubClassPredicate = rdf.SubClassOf
	}
	return &Reasoner{facts: facts, opts: opts}
}

// TypePredicate returns the predicate that relates entities to classes.
func (r *Reasoner) TypePredicate() rdf.Node {
	return r.opts.TypePredicate
}

// Invalidate discards all cached state. The next call rebuilds it from the
// store. This is only needed if the Facts implementation doesn't change its
// Generation when its content changes.
func (r *Reasoner) Invalidate() {
	r.lock.Lock()
	r.built = false
	r.lock.Unlock()
}

// refreshLocked rebuilds the class adjacency maps if they are missing or were
// built from an older generation of the store. r.lock must be held.
func (r *Reasoner) refreshLocked() {
	gen := r.facts.Generation()
	if r.built && gen == r.generation {
		return
	}
	r.superclasses = make(map[rdf.Node][]rdf.Node)
	r.subclasses = make(map[rdf.Node][]rdf.Node)
	r.ancestors = make(map[rdf.Node][]rdf.Node)
	r.descendants = make(map[rdf.Node][]rdf.Node)
	edges := r.facts.Match(rdf.Nil, r.opts.SubClassPredicate, rdf.Nil)
	for _, t := range edges {
		if !t.Object.IsIRI() {
			continue
		}
		r.superclasses[t.Subject] = append(r.superclasses[t.Subject], t.Object)
		r.subclasses[t.Object] = append(r.subclasses[t.Object], t.Subject)
	}
	log.WithFields(log.Fields{
		"generation":    gen,
		"subclassFacts": len(edges),
		"classes":       len(r.superclasses),
	}).Debug("Rebuilt class hierarchy")
	metrics.hierarchyRebuilds.Inc()
	r.built = true
	r.generation = gen
}

// superclassesLocked returns the cached ancestor closure of class. The
// returned slice must not be modified. r.lock must be held.
func (r *Reasoner) superclassesLocked(class rdf.Node) []rdf.Node {
	res, cached := r.ancestors[class]
	if !cached {
		res = breadthFirst(class, r.superclasses)
		r.ancestors[class] = res
	}
	return res
}

func (r *Reasoner) subclassesLocked(class rdf.Node) []rdf.Node {
	res, cached := r.descendants[class]
	if !cached {
		res = breadthFirst(class, r.subclasses)
		r.descendants[class] = res
	}
	return res
}

// Superclasses returns every class that class is a direct or transitive
// subclass of, nearest first. The class itself is included only if it's part
// of a cycle in the hierarchy.
func (r *Reasoner) Superclasses(class rdf.Node) []rdf.Node {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.refreshLocked()
	return append([]rdf.Node(nil), r.superclassesLocked(class)...)
}

// Subclasses returns every class that is a direct or transitive subclass of
// class, nearest first. The class itself is included only if it's part of a
// cycle in the hierarchy.
func (r *Reasoner) Subclasses(class rdf.Node) []rdf.Node {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.refreshLocked()
	return append([]rdf.Node(nil), r.subclassesLocked(class)...)
}

// IsSubClassOf returns true if class is a direct or transitive subclass of
// super.
func (r *Reasoner) IsSubClassOf(class, super rdf.Node) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.refreshLocked()
	return contains(r.superclassesLocked(class), super)
}

// ExplicitTypesOf returns the classes that node is declared to be an instance
// of, in insertion order.
func (r *Reasoner) ExplicitTypesOf(node rdf.Node) []rdf.Node {
	if node.IsNil() {
		return nil
	}
	var res []rdf.Node
	for _, t := range r.facts.Match(node, r.opts.TypePredicate, rdf.Nil) {
		if t.Object.IsIRI() {
			res = append(res, t.Object)
		}
	}
	return res
}

// TypesOf returns every class that node is an instance of: each explicitly
// declared type, in insertion order, followed by that type's superclasses.
// Each class appears once. The result is empty for a node with no type facts.
func (r *Reasoner) TypesOf(node rdf.Node) []rdf.Node {
	explicit := r.ExplicitTypesOf(node)
	if len(explicit) == 0 {
		return nil
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.refreshLocked()
	seen := make(map[rdf.Node]struct{}, len(explicit))
	res := make([]rdf.Node, 0, len(explicit))
	add := func(class rdf.Node) {
		if _, exists := seen[class]; !exists {
			seen[class] = struct{}{}
			res = append(res, class)
		}
	}
	for _, class := range explicit {
		add(class)
		for _, super := range r.superclassesLocked(class) {
			add(super)
		}
	}
	return res
}

// IsInstanceOf returns true if class is one of TypesOf(node).
func (r *Reasoner) IsInstanceOf(node, class rdf.Node) bool {
	explicit := r.ExplicitTypesOf(node)
	if len(explicit) == 0 {
		return false
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.refreshLocked()
	for _, t := range explicit {
		if t == class || contains(r.superclassesLocked(t), class) {
			return true
		}
	}
	return false
}

// InstancesOf returns every node that IsInstanceOf(node, class), ordered by
// the first type fact that qualifies it.
func (r *Reasoner) InstancesOf(class rdf.Node) []rdf.Node {
	r.lock.Lock()
	r.refreshLocked()
	classes := make(map[rdf.Node]struct{})
	classes[class] = struct{}{}
	for _, sub := range r.subclassesLocked(class) {
		classes[sub] = struct{}{}
	}
	r.lock.Unlock()

	var res []rdf.Node
	seen := make(map[rdf.Node]struct{})
	for _, t := range r.facts.Match(rdf.Nil, r.opts.TypePredicate, rdf.Nil) {
		if _, qualifies := classes[t.Object]; !qualifies {
			continue
		}
		if _, exists := seen[t.Subject]; !exists {
			seen[t.Subject] = struct{}{}
			res = append(res, t.Subject)
		}
	}
	return res
}

// TypedNodes returns every node with at least one type fact, in order of its
// first type fact.
func (r *Reasoner) TypedNodes() []rdf.Node {
	var res []rdf.Node
	seen := make(map[rdf.Node]struct{})
	for _, t := range r.facts.Match(rdf.Nil, r.opts.TypePredicate, rdf.Nil) {
		if !t.Object.IsIRI() {
			continue
		}
		if _, exists := seen[t.Subject]; !exists {
			seen[t.Subject] = struct{}{}
			res = append(res, t.Subject)
		}
	}
	return res
}

func contains(list []rdf.Node, n rdf.Node) bool {
	for _, item := range list {
		if item == n {
			return true
		}
	}
	return false
}
