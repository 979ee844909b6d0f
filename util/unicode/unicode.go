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

// Package unicode normalizes text entering the graph, so that two spellings of
// the same string (composed and decomposed accents, for example) end up as the
// same node.
package unicode

import (
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the NFC form of 's'. Literals and IRIs are normalized at
// the loader and query parser boundaries, never inside the store.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// IsNormalized reports whether 's' is already in NFC form.
func IsNormalized(s string) bool {
	return norm.NFC.IsNormalString(s)
}
