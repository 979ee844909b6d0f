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

package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/errors"
	"gopkg.in/yaml.v3"
)

// isYAML returns true if the filename's extension indicates YAML rather than
// JSON.
func isYAML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load parses the configuration from the given JSON or YAML file, chosen by
// the file's extension. Unknown fields are rejected. Upon success, it returns a
// non-nil, valid configuration. Otherwise, it returns an error, which already
// includes the filename.
func Load(filename string) (*KGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg *KGraph
	if isYAML(filename) {
		cfg, err = decodeYAML(bufio.NewReader(f), filename)
	} else {
		cfg, err = decodeJSON(bufio.NewReader(f), filename)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Prefixes == nil {
		cfg.Prefixes = make(map[string]string)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %v: %v", filename, err)
	}
	return cfg, nil
}

func decodeJSON(r io.Reader, filename string) (*KGraph, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	cfg := new(KGraph)
	// This **KGraph double-pointer appears to be required to detect an invalid
	// input of "null". See Test_Load/file_contains_null test.
	err := decoder.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding JSON value in %v: %v", filename, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("loading %v resulted in nil config", filename)
	}
	if decoder.More() {
		return nil, fmt.Errorf("found unexpected data after config in %v", filename)
	}
	return cfg, nil
}

func decodeYAML(r io.Reader, filename string) (*KGraph, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	cfg := new(KGraph)
	err := decoder.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding YAML value in %v: %v", filename, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("loading %v resulted in nil config", filename)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("found unexpected data after config in %v", filename)
	}
	return cfg, nil
}

// Write marshalls the configuration as JSON or YAML, chosen by the file's
// extension, to the given file. It truncates the file if it already exists. It
// returns nil upon success. Otherwise, it returns an error, which already
// includes the filename.
func Write(cfg *KGraph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	writer := bufio.NewWriter(f)
	if isYAML(filename) {
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		err = errors.Any(
			encoder.Encode(cfg),
			encoder.Close(),
			writer.Flush(),
			f.Close(),
		)
	} else {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "\t")
		err = errors.Any(
			encoder.Encode(cfg),
			writer.Flush(),
			f.Close(),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to write %v: %v", filename, err)
	}
	return nil
}

var (
	logLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}
	rankDirs  = []string{"TB", "LR", "BT", "RL"}
)

// Validate checks the enumerated settings and that every IRI in the
// configuration resolves against its prefixes.
func (cfg *KGraph) Validate() error {
	if cfg.Log != nil && cfg.Log.Level != "" && !oneOf(strings.ToLower(cfg.Log.Level), logLevels) {
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	if cfg.Export.RankDir != "" && !oneOf(cfg.Export.RankDir, rankDirs) {
		return fmt.Errorf("rankDir must be one of %v, got %q", rankDirs, cfg.Export.RankDir)
	}
	check := func(what string, values ...string) error {
		for _, v := range values {
			if v == "" {
				continue
			}
			if _, err := cfg.IRI(v); err != nil {
				return fmt.Errorf("%s: %v", what, err)
			}
		}
		return nil
	}
	var colorKeys []string
	for k := range cfg.Export.TypeColors {
		colorKeys = append(colorKeys, k)
	}
	for k := range cfg.Export.EdgeColors {
		colorKeys = append(colorKeys, k)
	}
	return errors.Any(
		check("vocabulary", cfg.Vocabulary.TypePredicate, cfg.Vocabulary.SubClassPredicate),
		check("export label predicates", cfg.Export.LabelPredicates...),
		check("export exclude predicates", cfg.Export.ExcludePredicates...),
		check("export colors", colorKeys...),
	)
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// AllPrefixes returns the well-known prefixes overlaid with the configured
// ones. The caller may modify the returned map.
func (cfg *KGraph) AllPrefixes() map[string]string {
	res := rdf.DefaultPrefixes()
	for name, ns := range cfg.Prefixes {
		res[name] = ns
	}
	return res
}

// IRI resolves a configured IRI. It accepts "<http://...>", a prefixed name
// like "ps2:hasTitle" whose prefix is in AllPrefixes, or an absolute IRI like
// "http://...".
func (cfg *KGraph) IRI(s string) (rdf.Node, error) {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return rdf.IRI(s[1 : len(s)-1]), nil
	}
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return rdf.Nil, fmt.Errorf("%q is not an IRI or prefixed name", s)
	}
	prefixes := cfg.AllPrefixes()
	if _, declared := prefixes[s[:idx]]; declared {
		return rdf.ExpandQName(s, prefixes)
	}
	if strings.HasPrefix(s[idx+1:], "//") {
		return rdf.IRI(s), nil
	}
	return rdf.Nil, fmt.Errorf("undeclared prefix %q in %q", s[:idx], s)
}

// IRIs resolves each value with IRI.
func (cfg *KGraph) IRIs(values []string) ([]rdf.Node, error) {
	res := make([]rdf.Node, 0, len(values))
	for _, v := range values {
		n, err := cfg.IRI(v)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}
