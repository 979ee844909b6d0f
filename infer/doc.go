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

// Package infer implements type inference over a class hierarchy. Classes are
// related by a subclass predicate, and entities are related to classes by a
// type predicate. If an entity has a type, it's also an instance of every
// superclass of that type.
//
// For example, given facts that describe a classification:
//
// [RPG] -subClassOf-> [Game] -subClassOf-> [Product]
//
// and a fact that says:
//
// [FinalFantasyX] -type-> [RPG]
//
// then we can infer that these additional facts are also true
//
// [FinalFantasyX] -type-> [Game]
//
// [FinalFantasyX] -type-> [Product]
//
// The inferred facts are never written back to the store. The Reasoner
// computes them on demand, following the hierarchy in both directions: up from
// a class to its superclasses, and down from a class to its subclasses. Cyclic
// hierarchies are allowed; every class on a cycle is a superclass of every
// other, including itself.
package infer
