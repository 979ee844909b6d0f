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

// Package store holds the in-memory triple set and its subject, predicate and
// object indices.
package store

import (
	"sync"

	"github.com/ebay/kgraph/rdf"
)

// Store is a set of triples, remembered in insertion order, with an index per
// triple position. The store is append-only. It is safe for concurrent use: a
// single writer lock guards inserts, and lookups share a reader lock.
type Store struct {
	lock sync.RWMutex
	// triples holds each distinct triple once, in insertion order. A triple's
	// position in this slice is its ID.
	triples []rdf.Triple
	// present maps each stored triple to its ID.
	present map[rdf.Triple]uint32
	// Each index maps a node to the ascending IDs of the triples that have the
	// node in that position.
	bySubject   map[rdf.Node][]uint32
	byPredicate map[rdf.Node][]uint32
	byObject    map[rdf.Node][]uint32
	generation  uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		present:     make(map[rdf.Triple]uint32),
		bySubject:   make(map[rdf.Node][]uint32),
		byPredicate: make(map[rdf.Node][]uint32),
		byObject:    make(map[rdf.Node][]uint32),
	}
}

// Add inserts the triple if it's not already present. It returns true if the
// triple was inserted, false if it was a duplicate. Adding a triple that's
// already present leaves the store unchanged.
func (s *Store) Add(t rdf.Triple) bool {
	s.lock.Lock()
	inserted := s.addLocked(t)
	s.lock.Unlock()
	if inserted {
		metrics.triples.Inc()
	} else {
		metrics.duplicateAdds.Inc()
	}
	return inserted
}

// AddAll inserts each of the given triples, returning the number that were
// not already present.
func (s *Store) AddAll(triples []rdf.Triple) int {
	s.lock.Lock()
	added := 0
	for _, t := range triples {
		if s.addLocked(t) {
			added++
		}
	}
	s.lock.Unlock()
	metrics.triples.Add(float64(added))
	metrics.duplicateAdds.Add(float64(len(triples) - added))
	return added
}

func (s *Store) addLocked(t rdf.Triple) bool {
	if _, exists := s.present[t]; exists {
		return false
	}
	id := uint32(len(s.triples))
	s.triples = append(s.triples, t)
	s.present[t] = id
	s.bySubject[t.Subject] = append(s.bySubject[t.Subject], id)
	s.byPredicate[t.Predicate] = append(s.byPredicate[t.Predicate], id)
	s.byObject[t.Object] = append(s.byObject[t.Object], id)
	s.generation++
	return true
}

// Contains returns true if the triple is in the store.
func (s *Store) Contains(t rdf.Triple) bool {
	s.lock.RLock()
	_, exists := s.present[t]
	s.lock.RUnlock()
	return exists
}

// Match returns the triples that have the given subject, predicate and object.
// rdf.Nil in any position is a wildcard. The results are in insertion order,
// and the caller owns the returned slice.
//
// Match reads the smallest of the posting lists for the concrete positions and
// filters those candidates by the remaining positions. When every position is a
// wildcard, it returns every triple.
func (s *Store) Match(subject, predicate, object rdf.Node) []rdf.Triple {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var res []rdf.Triple
	s.matchLocked(subject, predicate, object, func(t rdf.Triple) {
		res = append(res, t)
	})
	return res
}

// matchLocked calls emit for each triple matching the pattern, in insertion
// order.
func (s *Store) matchLocked(subject, predicate, object rdf.Node, emit func(rdf.Triple)) {
	candidates, scan := s.candidatesLocked(subject, predicate, object)
	if scan {
		for _, t := range s.triples {
			emit(t)
		}
		return
	}
	for _, id := range candidates {
		t := s.triples[id]
		if matches(subject, t.Subject) &&
			matches(predicate, t.Predicate) &&
			matches(object, t.Object) {
			emit(t)
		}
	}
}

// candidatesLocked returns the shortest posting list among the concrete
// positions. scan is true if all three positions are wildcards. A concrete
// node that appears nowhere in its position yields an empty list.
func (s *Store) candidatesLocked(subject, predicate, object rdf.Node) (ids []uint32, scan bool) {
	scan = true
	consider := func(index map[rdf.Node][]uint32, n rdf.Node) {
		if n.IsNil() {
			return
		}
		list := index[n]
		if scan || len(list) < len(ids) {
			ids = list
		}
		scan = false
	}
	consider(s.bySubject, subject)
	consider(s.byPredicate, predicate)
	consider(s.byObject, object)
	return ids, scan
}

func matches(pattern, value rdf.Node) bool {
	return pattern.IsNil() || pattern == value
}

// Count returns the number of triples that Match would return for the same
// arguments, without copying them.
func (s *Store) Count(subject, predicate, object rdf.Node) int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	count := 0
	s.matchLocked(subject, predicate, object, func(rdf.Triple) {
		count++
	})
	return count
}

// All returns every triple in insertion order. The caller owns the returned
// slice.
func (s *Store) All() []rdf.Triple {
	s.lock.RLock()
	res := append([]rdf.Triple(nil), s.triples...)
	s.lock.RUnlock()
	return res
}

// Len returns the number of distinct triples in the store.
func (s *Store) Len() int {
	s.lock.RLock()
	n := len(s.triples)
	s.lock.RUnlock()
	return n
}

// Generation returns a counter that increases every time a triple is inserted.
// Consumers that cache state derived from the store compare generations to
// detect that their cache is stale.
func (s *Store) Generation() uint64 {
	s.lock.RLock()
	g := s.generation
	s.lock.RUnlock()
	return g
}
