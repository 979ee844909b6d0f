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
	"strings"

	"github.com/ebay/kgraph/rdf"
)

// Binding assigns values to some of a query's variables. Bindings are
// immutable: With returns a new Binding and leaves the receiver unchanged. The
// zero value is the empty Binding.
type Binding struct {
	names  []string
	values []rdf.Node
}

// Len returns the number of bound variables.
func (b Binding) Len() int {
	return len(b.names)
}

// Get returns the value bound to the variable name, or ok=false if it's not
// bound.
func (b Binding) Get(name string) (value rdf.Node, ok bool) {
	for i, n := range b.names {
		if n == name {
			return b.values[i], true
		}
	}
	return rdf.Nil, false
}

// With returns a copy of the binding that also binds name to value. If name
// is already bound, the copy replaces its value.
func (b Binding) With(name string, value rdf.Node) Binding {
	for i, n := range b.names {
		if n == name {
			res := Binding{
				names:  b.names,
				values: append([]rdf.Node(nil), b.values...),
			}
			res.values[i] = value
			return res
		}
	}
	res := Binding{
		names:  make([]string, len(b.names)+1),
		values: make([]rdf.Node, len(b.values)+1),
	}
	copy(res.names, b.names)
	copy(res.values, b.values)
	res.names[len(b.names)] = name
	res.values[len(b.values)] = value
	return res
}

// Names returns the bound variable names in the order they were bound.
func (b Binding) Names() []string {
	return append([]string(nil), b.names...)
}

// resolve returns the value of a term under the binding: the constant, the
// bound value of a variable, or rdf.Nil for an unbound variable.
func (b Binding) resolve(t Term) rdf.Node {
	if !t.IsVar() {
		return t.value
	}
	v, _ := b.Get(t.variable)
	return v
}

// bind extends the binding with the given variable, unless it's a constant or
// already bound. ok is false if the variable is already bound to a different
// value.
func (b Binding) bind(t Term, value rdf.Node) (res Binding, ok bool) {
	if !t.IsVar() {
		return b, true
	}
	if existing, bound := b.Get(t.variable); bound {
		return b, existing == value
	}
	return b.With(t.variable, value), true
}

func (b Binding) String() string {
	s := strings.Builder{}
	s.WriteByte('{')
	for i, n := range b.names {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(n)
		s.WriteByte('=')
		s.WriteString(b.values[i].String())
	}
	s.WriteByte('}')
	return s.String()
}
