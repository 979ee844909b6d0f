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

// Package config contains the configuration for the kgraph tools and server.
// The configuration is typically loaded from a JSON or YAML file on disk; any
// section that's left out takes its default value.
package config

// KGraph describes the configuration for the kgraph command and its HTTP
// server.
type KGraph struct {
	// Namespace prefixes available to queries and TSV data, keyed by prefix
	// name without the trailing colon. These are added to the rdf, rdfs and
	// xsd prefixes, and may override them.
	Prefixes map[string]string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`

	// The predicates that drive type inference.
	Vocabulary Vocabulary `json:"vocabulary" yaml:"vocabulary"`

	// How graphs are written in the DOT language.
	Export Export `json:"export" yaml:"export"`

	// Logging configuration. If nil, logs are written at the info level.
	Log *Log `json:"log,omitempty" yaml:"log,omitempty"`

	// If non-nil, the configuration for distributed tracing (OpenTracing). If
	// nil, spans are only used to record durations in metrics.
	Tracing *Tracing `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Configuration for the HTTP server. Ignored by the other commands.
	API *API `json:"api,omitempty" yaml:"api,omitempty"`
}

// Vocabulary names the predicates used for types and the class hierarchy.
// Values are IRIs or prefixed names. Empty values mean rdf:type and
// rdfs:subClassOf.
type Vocabulary struct {
	TypePredicate     string `json:"typePredicate,omitempty" yaml:"typePredicate,omitempty"`
	SubClassPredicate string `json:"subClassPredicate,omitempty" yaml:"subClassPredicate,omitempty"`
}

// Export contains the DOT output settings. IRIs may be given in full or as
// prefixed names.
type Export struct {
	// The name of the digraph. Defaults to "KnowledgeGraph".
	GraphName string `json:"graphName,omitempty" yaml:"graphName,omitempty"`

	// The Graphviz rankdir attribute. Defaults to "LR".
	RankDir string `json:"rankDir,omitempty" yaml:"rankDir,omitempty"`

	// The node font. Defaults to "Arial".
	FontName string `json:"fontName,omitempty" yaml:"fontName,omitempty"`

	// Predicates whose string values label a node, in order of preference.
	// If empty, nodes are labeled with their IRI fragment.
	LabelPredicates []string `json:"labelPredicates,omitempty" yaml:"labelPredicates,omitempty"`

	// Fill colors keyed by type IRI.
	TypeColors map[string]string `json:"typeColors,omitempty" yaml:"typeColors,omitempty"`

	// Edge colors keyed by predicate IRI.
	EdgeColors map[string]string `json:"edgeColors,omitempty" yaml:"edgeColors,omitempty"`

	// The fill color for nodes whose type has no entry in TypeColors.
	// Defaults to "#CCCCCC".
	DefaultColor string `json:"defaultColor,omitempty" yaml:"defaultColor,omitempty"`

	// The type shown for nodes without one. Defaults to "Unknown".
	UnknownType string `json:"unknownType,omitempty" yaml:"unknownType,omitempty"`

	// Predicates whose edges are left out of the output.
	ExcludePredicates []string `json:"excludePredicates,omitempty" yaml:"excludePredicates,omitempty"`
}

// Log contains configuration for the debug log.
type Log struct {
	// One of "panic", "fatal", "error", "warn", "info", "debug" or "trace".
	// Defaults to "info".
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// If true, the log highlights some output with ANSI colors.
	ForceColors bool `json:"forceColors,omitempty" yaml:"forceColors,omitempty"`
}

// Tracing contains configuration related to distributed execution tracing.
type Tracing struct {
	// The host:port of a Jaeger agent that accepts jaeger.thrift over UDP. If
	// empty, spans are not reported anywhere.
	AgentHostPort string `json:"agentHostPort,omitempty" yaml:"agentHostPort,omitempty"`
}

// API contains configuration specific to the HTTP server.
type API struct {
	// The host:port or :port on which to serve HTTP requests. Defaults to
	// ":9980".
	HTTPAddress string `json:"httpAddress,omitempty" yaml:"httpAddress,omitempty"`

	// The maximum number of rows a query request may return. If 0, results
	// aren't truncated.
	MaxRows int `json:"maxRows,omitempty" yaml:"maxRows,omitempty"`

	// If true, the server accepts insert requests. The graph is read-only
	// otherwise.
	AllowInsert bool `json:"allowInsert,omitempty" yaml:"allowInsert,omitempty"`
}

// DefaultHTTPAddress is where the server listens if the configuration doesn't
// say otherwise.
const DefaultHTTPAddress = ":9980"

// Default returns the configuration used when no file is given.
func Default() *KGraph {
	return &KGraph{
		Prefixes: map[string]string{},
		Log:      &Log{Level: "info"},
		API:      &API{HTTPAddress: DefaultHTTPAddress},
	}
}
