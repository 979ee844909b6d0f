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
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"
)

// blankPrefix marks IRIs that stand for blank nodes.
const blankPrefix = "_:"

// FromQuad converts a cayley quad value into a Node. Blank nodes become IRIs
// starting with "_:". Typed strings are
// converted according to their XML Schema datatype. Values with no Node
// equivalent (times, unknown datatypes) return an error, as do typed strings
// whose text doesn't parse as their datatype.
func FromQuad(v quad.Value) (Node, error) {
	switch tv := v.(type) {
	case quad.IRI:
		return IRI(string(tv.Full())), nil
	case quad.BNode:
		return IRI(blankPrefix + string(tv)), nil
	case quad.String:
		return String(string(tv)), nil
	case quad.LangString:
		return String(string(tv.Value)), nil
	case quad.Int:
		return Int64(int64(tv)), nil
	case quad.Float:
		return Float64(float64(tv)), nil
	case quad.Bool:
		return Bool(bool(tv)), nil
	case quad.TypedString:
		return fromTypedString(tv)
	case nil:
		return Nil, fmt.Errorf("missing value")
	default:
		return Nil, fmt.Errorf("unsupported literal kind %T: %v", v, v)
	}
}

func fromTypedString(ts quad.TypedString) (Node, error) {
	datatype := string(ts.Type.Full())
	if !strings.HasPrefix(datatype, xsd.NS) {
		return Nil, fmt.Errorf("unsupported literal datatype <%s>", datatype)
	}
	text := strings.TrimSpace(string(ts.Value))
	switch strings.TrimPrefix(datatype, xsd.NS) {
	case "string", "normalizedString", "token", "anyURI", "gYear", "date", "dateTime":
		return String(string(ts.Value)), nil
	case "integer", "int", "long", "short", "byte", "nonNegativeInteger",
		"positiveInteger", "nonPositiveInteger", "negativeInteger",
		"unsignedInt", "unsignedLong", "unsignedShort", "unsignedByte":
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Nil, fmt.Errorf("invalid integer literal %q: %v", text, err)
		}
		return Int64(i), nil
	case "decimal", "double", "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Nil, fmt.Errorf("invalid float literal %q: %v", text, err)
		}
		return Float64(f), nil
	case "boolean":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Nil, fmt.Errorf("invalid boolean literal %q: %v", text, err)
		}
		return Bool(b), nil
	default:
		return Nil, fmt.Errorf("unsupported literal datatype <%s>", datatype)
	}
}

// ToQuad converts a Node into the equivalent cayley quad value. IRIs starting
// with "_:" become blank nodes. It returns nil for the Nil node.
func ToQuad(n Node) quad.Value {
	switch n.Kind() {
	case KindNil:
		return nil
	case KindIRI:
		if strings.HasPrefix(n.ValIRI(), blankPrefix) {
			return quad.BNode(strings.TrimPrefix(n.ValIRI(), blankPrefix))
		}
		return quad.IRI(n.ValIRI())
	case KindString:
		return quad.String(n.ValString())
	case KindInt64:
		return quad.Int(n.ValInt64())
	case KindFloat64:
		return quad.Float(n.ValFloat64())
	case KindBool:
		return quad.Bool(n.ValBool())
	default:
		panic(fmt.Sprintf("rdf.ToQuad: unexpected kind %v", n.Kind()))
	}
}
