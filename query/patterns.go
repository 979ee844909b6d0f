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
	"fmt"
)

// applyPattern joins the bindings with a single pattern. For each input
// binding, it substitutes the already bound variables into the pattern, looks
// up the candidates, and extends the binding with each candidate's values.
// Candidates that disagree with an existing binding are dropped. The output
// preserves the input order, and within an input binding, the order of the
// candidates.
func (e *Engine) applyPattern(in []Binding, p Pattern) []Binding {
	var out []Binding
	for _, b := range in {
		switch p := p.(type) {
		case *TriplePattern:
			out = e.applyTriplePattern(out, b, p)
		case *TypePattern:
			out = e.applyTypePattern(out, b, p)
		default:
			panic(fmt.Sprintf("Unexpected pattern type %T %v", p, p))
		}
	}
	return out
}

func (e *Engine) applyTriplePattern(out []Binding, b Binding, p *TriplePattern) []Binding {
	subject := b.resolve(p.Subject)
	predicate := b.resolve(p.Predicate)
	object := b.resolve(p.Object)
	for _, t := range e.store.Match(subject, predicate, object) {
		next, ok := b.bind(p.Subject, t.Subject)
		if !ok {
			continue
		}
		if next, ok = next.bind(p.Predicate, t.Predicate); !ok {
			continue
		}
		if next, ok = next.bind(p.Object, t.Object); !ok {
			continue
		}
		out = append(out, next)
	}
	return out
}

func (e *Engine) applyTypePattern(out []Binding, b Binding, p *TypePattern) []Binding {
	subject := b.resolve(p.Subject)
	class := b.resolve(p.Class)
	switch {
	case !subject.IsNil() && !class.IsNil():
		if e.reasoner.IsInstanceOf(subject, class) {
			out = append(out, b)
		}
	case !subject.IsNil():
		for _, c := range e.reasoner.TypesOf(subject) {
			if next, ok := b.bind(p.Class, c); ok {
				out = append(out, next)
			}
		}
	case !class.IsNil():
		for _, n := range e.reasoner.InstancesOf(class) {
			if next, ok := b.bind(p.Subject, n); ok {
				out = append(out, next)
			}
		}
	default:
		for _, n := range e.reasoner.TypedNodes() {
			withSubject, ok := b.bind(p.Subject, n)
			if !ok {
				continue
			}
			for _, c := range e.reasoner.TypesOf(n) {
				if next, ok := withSubject.bind(p.Class, c); ok {
					out = append(out, next)
				}
			}
		}
	}
	return out
}
