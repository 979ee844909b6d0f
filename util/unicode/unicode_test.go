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

package unicode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Normalize(t *testing.T) {
	type tc struct {
		name string
		in   string
		exp  string
	}
	tests := []tc{
		{"empty", "", ""},
		{"decomposed", "Pokémon", "Pokémon"},
		{"composed", "Pokémon", "Pokémon"},
		{"iri", "http://example.org/ps2games#Tekken3", "http://example.org/ps2games#Tekken3"},
		{"ordering_of_marks", "eq̣̇uivalent", "eq̣̇uivalent"},
		{"superscript_digit", "e⁹", "e⁹"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, Normalize(test.in))
			assert.True(t, IsNormalized(Normalize(test.in)))
		})
	}
	assert.False(t, IsNormalized("Pokémon"))
}
