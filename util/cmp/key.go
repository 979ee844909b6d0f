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

// Package cmp has helpers for comparing and keying values.
package cmp

import (
	"strings"
)

// The Key interface is satisfied by any value whose identity can be serialized
// into a string. Two values with the same key are considered the same value,
// which lets composite values (like a tuple of graph nodes) be used as map
// keys.
type Key interface {
	// Key writes a serialization of the value's identity to the given
	// strings.Builder. The serialization must be unambiguous when several keys
	// are concatenated, and should be human-readable to help with debugging.
	Key(*strings.Builder)
}

// GetKey returns the identity key of the value.
func GetKey(value Key) string {
	var b strings.Builder
	value.Key(&b)
	return b.String()
}

// GetKeys returns a single identity key for a sequence of values. Each value's
// key is separated by a NUL byte.
func GetKeys(values ...Key) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(0)
		}
		v.Key(&b)
	}
	return b.String()
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
