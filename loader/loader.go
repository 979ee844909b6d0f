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

// Package loader reads triples from files. It's the boundary at which input
// is checked: every triple it returns has IRI subjects and predicates, and
// every string has been NFC normalized.
//
// Two formats are supported. The tsv format has one "subject predicate object"
// fact per line, using the same terms as the query language, along with PREFIX
// declarations and # comments. The nquads format is standard N-Quads; the
// graph label is ignored.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/ebay/kgraph/query/parser"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/errors"
	"github.com/ebay/kgraph/util/tracing"
	"github.com/ebay/kgraph/util/unicode"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Format identifies the syntax of a triples file.
type Format string

// The supported Formats.
const (
	TSV    Format = "tsv"
	NQuads Format = "nquads"
)

// ParseFormat returns the Format with the given name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case TSV:
		return TSV, nil
	case NQuads, "nq":
		return NQuads, nil
	}
	return "", fmt.Errorf("unsupported input format %q: expected tsv or nquads", name)
}

// FormatOf guesses a file's Format from its extension: .nq and .nquads are
// NQuads, and .tsv, .facts and .txt are TSV.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".nq", ".nquads":
		return NQuads, nil
	case ".tsv", ".facts", ".txt":
		return TSV, nil
	}
	return "", fmt.Errorf("could not determine input format from filename: %v", filename)
}

// DataError describes malformed input.
type DataError struct {
	// Source names the input, usually the filename.
	Source string
	// Line is the 1-based line number of the bad input.
	Line int
	// Column is the 1-based column, in runes, or 0 if it's not known.
	Column int
	// Details describes the problem.
	Details string
}

func (e *DataError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Details)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Details)
}

// Options control how names in tsv input are resolved. The zero value is
// usable.
type Options struct {
	// Prefixes are available in addition to the rdf, rdfs and xsd prefixes.
	Prefixes map[string]string
	// TypePredicate is the predicate that 'a' stands for. Defaults to
	// rdf:type.
	TypePredicate rdf.Node
}

// LoadFile reads all the triples in the named file. If format is empty, it's
// determined from the filename.
func LoadFile(ctx context.Context, filename string, format Format, opts Options) ([]rdf.Triple, error) {
	if format == "" {
		var err error
		if format, err = FormatOf(filename); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(ctx, f, filename, format, opts)
}

// Load reads all the triples from 'r'. 'source' names the input in errors.
// Prefixed names in tsv input are resolved against the standard rdf, rdfs and
// xsd prefixes, then opts.Prefixes, then the input's own PREFIX declarations.
// On malformed input, it returns a *DataError.
func Load(ctx context.Context, r io.Reader, source string, format Format, opts Options) ([]rdf.Triple, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "load")
	span.SetTag("format", string(format))
	tracing.UpdateMetric(span, metrics.loadDurationSeconds)
	defer span.Finish()
	start := time.Now()

	var triples []rdf.Triple
	var err error
	switch format {
	case TSV:
		triples, err = loadTSV(r, source, opts)
	case NQuads:
		triples, err = loadNQuads(r, source)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		metrics.malformedInputs.Inc()
		span.SetTag("error", true)
		return nil, err
	}
	metrics.triplesRead.WithLabelValues(string(format)).Add(float64(len(triples)))
	span.SetTag("triples", len(triples))
	log.WithFields(log.Fields{
		"source":   source,
		"format":   format,
		"triples":  len(triples),
		"duration": time.Since(start),
	}).Debug("Loaded triples")
	return triples, nil
}

func loadTSV(r io.Reader, source string, opts Options) ([]rdf.Triple, error) {
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	all := rdf.DefaultPrefixes()
	for name, iri := range opts.Prefixes {
		all[name] = iri
	}
	typePredicate := opts.TypePredicate
	if typePredicate.IsNil() {
		typePredicate = rdf.Type
	}
	triples, err := parser.ParseInsertWithType(string(in), all, typePredicate)
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			return nil, &DataError{
				Source:  source,
				Line:    perr.Line,
				Column:  perr.Column,
				Details: perr.Details,
			}
		}
		return nil, err
	}
	return triples, nil
}

func loadNQuads(r io.Reader, source string) ([]rdf.Triple, error) {
	// Read everything first so that a failed read can't leave a truncated
	// last line to be reported as malformed.
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var triples []rdf.Triple
	scanner := bufio.NewScanner(bytes.NewReader(in))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		q, err := nquads.Parse(unicode.Normalize(line))
		if err != nil {
			return nil, &DataError{Source: source, Line: lineNum, Details: err.Error()}
		}
		t, err := fromQuad(q)
		if err != nil {
			return nil, &DataError{Source: source, Line: lineNum, Details: err.Error()}
		}
		triples = append(triples, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return triples, nil
}

func fromQuad(q quad.Quad) (rdf.Triple, error) {
	var t rdf.Triple
	var err error
	if t.Subject, err = rdf.FromQuad(q.Subject); err != nil {
		return t, fmt.Errorf("subject: %v", err)
	}
	if t.Predicate, err = rdf.FromQuad(q.Predicate); err != nil {
		return t, fmt.Errorf("predicate: %v", err)
	}
	if t.Object, err = rdf.FromQuad(q.Object); err != nil {
		return t, fmt.Errorf("object: %v", err)
	}
	return t, t.Validate()
}

// WriteNQuads writes the triples to 'w' in N-Quads format, without a graph
// label.
func WriteNQuads(w io.Writer, triples []rdf.Triple) error {
	buf := bufio.NewWriter(w)
	enc := nquads.NewWriter(buf)
	for _, t := range triples {
		err := enc.WriteQuad(quad.Quad{
			Subject:   rdf.ToQuad(t.Subject),
			Predicate: rdf.ToQuad(t.Predicate),
			Object:    rdf.ToQuad(t.Object),
		})
		if err != nil {
			return err
		}
	}
	return errors.Any(enc.Close(), buf.Flush())
}
