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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

func Test_Vocabulary(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), Type)
	assert.Equal(IRI("http://www.w3.org/2000/01/rdf-schema#subClassOf"), SubClassOf)
	p := DefaultPrefixes()
	assert.Equal("http://www.w3.org/1999/02/22-rdf-syntax-ns#", p["rdf"])
	assert.Equal("http://www.w3.org/2000/01/rdf-schema#", p["rdfs"])
	assert.Equal(xsdNS, p["xsd"])
}

func Test_ExpandQName(t *testing.T) {
	assert := assert.New(t)
	prefixes := map[string]string{"ps2": "http://example.org/ps2games#"}
	n, err := ExpandQName("ps2:Game", prefixes)
	assert.NoError(err)
	assert.Equal(IRI("http://example.org/ps2games#Game"), n)
	_, err = ExpandQName("foo:Game", prefixes)
	assert.EqualError(err, `undeclared prefix "foo" in "foo:Game"`)
	_, err = ExpandQName("Game", prefixes)
	assert.Error(err)
}

func Test_Compact(t *testing.T) {
	prefixes := map[string]string{
		"ps2":  "http://example.org/ps2games#",
		"ex":   "http://example.org/",
		"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	}
	tests := []struct {
		in  Node
		exp string
	}{
		{IRI("http://example.org/ps2games#Game"), "ps2:Game"},
		{IRI("http://example.org/other"), "ex:other"},
		{SubClassOf, "rdfs:subClassOf"},
		{IRI("http://elsewhere.org/x"), "<http://elsewhere.org/x>"},
		{String("Namco"), `"Namco"`},
		{Int64(42), "42"},
	}
	for _, test := range tests {
		assert.Equal(t, test.exp, Compact(test.in, prefixes))
	}
	assert.Equal(t, "<http://example.org/a>", Compact(IRI("http://example.org/a"), nil))
}

func Test_FromQuad(t *testing.T) {
	tests := []struct {
		name string
		in   quad.Value
		exp  Node
	}{
		{"iri", quad.IRI("http://example.org/a"), IRI("http://example.org/a")},
		{"bnode", quad.BNode("b1"), IRI("_:b1")},
		{"string", quad.String("Namco"), String("Namco")},
		{"langString", quad.LangString{Value: "Namco", Lang: "en"}, String("Namco")},
		{"int", quad.Int(1998), Int64(1998)},
		{"float", quad.Float(9.5), Float64(9.5)},
		{"bool", quad.Bool(true), Bool(true)},
		{"xsdInteger", quad.TypedString{Value: "8500000", Type: quad.IRI(xsdNS + "integer")}, Int64(8500000)},
		{"xsdDouble", quad.TypedString{Value: "9.6", Type: quad.IRI(xsdNS + "double")}, Float64(9.6)},
		{"xsdBoolean", quad.TypedString{Value: "false", Type: quad.IRI(xsdNS + "boolean")}, Bool(false)},
		{"xsdString", quad.TypedString{Value: "Spira", Type: quad.IRI(xsdNS + "string")}, String("Spira")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			act, err := FromQuad(test.in)
			require.NoError(t, err)
			assert.Equal(t, test.exp, act)
		})
	}
}

func Test_FromQuadErrors(t *testing.T) {
	assert := assert.New(t)
	_, err := FromQuad(nil)
	assert.Error(err)
	_, err = FromQuad(quad.TypedString{Value: "abc", Type: quad.IRI(xsdNS + "integer")})
	assert.Error(err)
	_, err = FromQuad(quad.TypedString{Value: "x", Type: quad.IRI("http://example.org/myType")})
	assert.Error(err)
	_, err = FromQuad(quad.TypedString{Value: "P1D", Type: quad.IRI(xsdNS + "duration")})
	assert.Error(err)
}

func Test_ToQuadRoundTrip(t *testing.T) {
	nodes := []Node{
		IRI("http://example.org/a"), IRI("_:b0"), String("Kratos"), Int64(8), Float64(9.2), Bool(true),
	}
	for _, n := range nodes {
		back, err := FromQuad(ToQuad(n))
		assert.NoError(t, err)
		assert.Equal(t, n, back)
	}
	assert.Nil(t, ToQuad(Nil))
	assert.Equal(t, quad.BNode("b0"), ToQuad(IRI("_:b0")))
}
