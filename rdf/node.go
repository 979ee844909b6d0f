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

// Package rdf defines the values stored in the graph: nodes, which are either
// IRIs or typed literals, and triples built from them.
package rdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Node holds.
type Kind uint8

// The possible Kinds of a Node. KindNil is the zero value, and is used as the
// wildcard in lookups and for variables that have not been bound.
const (
	KindNil Kind = iota
	KindIRI
	KindString
	KindInt64
	KindFloat64
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindIRI:
		return "iri"
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is an immutable graph value. Nodes are comparable with == and can be
// used as map keys; two IRI nodes are equal iff their identifiers are equal.
type Node struct {
	kind Kind
	str  string
	// num holds the int64, the float64 bits, or 0/1 for a bool.
	num uint64
}

// Nil is the zero Node. Lookups treat it as a wildcard.
var Nil = Node{}

// IRI returns a Node for the given identifier.
func IRI(iri string) Node {
	return Node{kind: KindIRI, str: iri}
}

// String returns a string literal Node.
func String(s string) Node {
	return Node{kind: KindString, str: s}
}

// Int64 returns an integer literal Node.
func Int64(i int64) Node {
	return Node{kind: KindInt64, num: uint64(i)}
}

// Float64 returns a floating point literal Node.
func Float64(f float64) Node {
	return Node{kind: KindFloat64, num: math.Float64bits(f)}
}

// Bool returns a boolean literal Node.
func Bool(b bool) Node {
	n := Node{kind: KindBool}
	if b {
		n.num = 1
	}
	return n
}

// Kind returns which variant this Node holds.
func (n Node) Kind() Kind {
	return n.kind
}

// IsNil returns true for the zero Node.
func (n Node) IsNil() bool {
	return n.kind == KindNil
}

// IsIRI returns true if the node is an IRI.
func (n Node) IsIRI() bool {
	return n.kind == KindIRI
}

// IsLiteral returns true if the node is a string, numeric or boolean literal.
func (n Node) IsLiteral() bool {
	switch n.kind {
	case KindString, KindInt64, KindFloat64, KindBool:
		return true
	}
	return false
}

// ValIRI returns the identifier of an IRI node, or "" for any other kind.
func (n Node) ValIRI() string {
	if n.kind == KindIRI {
		return n.str
	}
	return ""
}

// ValString returns the value of a string literal, or "" for any other kind.
func (n Node) ValString() string {
	if n.kind == KindString {
		return n.str
	}
	return ""
}

// ValInt64 returns the value of an integer literal, or 0 for any other kind.
func (n Node) ValInt64() int64 {
	if n.kind == KindInt64 {
		return int64(n.num)
	}
	return 0
}

// ValFloat64 returns the value of a float literal, or 0 for any other kind.
func (n Node) ValFloat64() float64 {
	if n.kind == KindFloat64 {
		return math.Float64frombits(n.num)
	}
	return 0
}

// ValBool returns the value of a boolean literal, or false for any other kind.
func (n Node) ValBool() bool {
	return n.kind == KindBool && n.num == 1
}

// Lexical returns the lexical form of the node: the identifier for an IRI,
// the unquoted text for a string, and the canonical decimal form for numbers
// and booleans. Floats always include a decimal point or exponent so they can
// be told apart from integers.
func (n Node) Lexical() string {
	switch n.kind {
	case KindNil:
		return ""
	case KindIRI, KindString:
		return n.str
	case KindInt64:
		return strconv.FormatInt(int64(n.num), 10)
	case KindFloat64:
		s := strconv.FormatFloat(n.ValFloat64(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case KindBool:
		return strconv.FormatBool(n.num == 1)
	default:
		panic(fmt.Sprintf("rdf.Node.Lexical: unexpected kind %v", n.kind))
	}
}

// Number coerces the node to a float64. Integer and float literals convert
// directly, string literals convert if their trimmed text parses as a number.
// IRIs, booleans and unparsable strings return ok=false.
func (n Node) Number() (value float64, ok bool) {
	switch n.kind {
	case KindInt64:
		return float64(int64(n.num)), true
	case KindFloat64:
		return n.ValFloat64(), true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(n.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case KindNil, KindIRI, KindBool:
		return 0, false
	default:
		panic(fmt.Sprintf("rdf.Node.Number: unexpected kind %v", n.kind))
	}
}

// Fragment returns the portion of an IRI after its first '#'. ok is false if
// the node isn't an IRI or the IRI has no fragment.
func (n Node) Fragment() (fragment string, ok bool) {
	if n.kind != KindIRI {
		return "", false
	}
	idx := strings.IndexByte(n.str, '#')
	if idx < 0 {
		return "", false
	}
	return n.str[idx+1:], true
}

// LocalName returns a short human name for an IRI: its fragment if it has
// one, otherwise its last path segment. For other kinds it returns the
// lexical form.
func (n Node) LocalName() string {
	if frag, ok := n.Fragment(); ok {
		return frag
	}
	if n.kind != KindIRI {
		return n.Lexical()
	}
	trimmed := strings.TrimRight(n.str, "/")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 && idx < len(trimmed)-1 {
		return trimmed[idx+1:]
	}
	return n.str
}

// String returns the node in the same syntax the query language uses:
// <iri>, "string", 42, 4.5, true.
func (n Node) String() string {
	switch n.kind {
	case KindNil:
		return "(nil)"
	case KindIRI:
		return "<" + n.str + ">"
	case KindString:
		return strconv.Quote(n.str)
	default:
		return n.Lexical()
	}
}

// Key implements cmp.Key. The kind is part of the key, so the string "42" and
// the integer 42 have different keys.
func (n Node) Key(b *strings.Builder) {
	b.WriteString(n.kind.String())
	b.WriteByte(':')
	b.WriteString(n.Lexical())
}
