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
)

// Triple is a single fact. Subject and Predicate are always IRIs; the Object
// may be an IRI or a literal.
type Triple struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// T is shorthand for building a Triple.
func T(subject, predicate, object Node) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// Validate returns an error if the triple isn't well formed: the subject and
// predicate must be non-empty IRIs, and the object must be set.
func (t Triple) Validate() error {
	if !t.Subject.IsIRI() || t.Subject.ValIRI() == "" {
		return fmt.Errorf("subject must be an IRI, got %v %v", t.Subject.Kind(), t.Subject)
	}
	if !t.Predicate.IsIRI() || t.Predicate.ValIRI() == "" {
		return fmt.Errorf("predicate must be an IRI, got %v %v", t.Predicate.Kind(), t.Predicate)
	}
	if t.Object.IsNil() {
		return fmt.Errorf("object must be set")
	}
	if t.Object.IsIRI() && t.Object.ValIRI() == "" {
		return fmt.Errorf("object IRI can't be empty")
	}
	return nil
}

func (t Triple) String() string {
	return fmt.Sprintf("%v %v %v", t.Subject, t.Predicate, t.Object)
}

// Key implements cmp.Key.
func (t Triple) Key(b *strings.Builder) {
	t.Subject.Key(b)
	b.WriteByte(' ')
	t.Predicate.Key(b)
	b.WriteByte(' ')
	t.Object.Key(b)
}
