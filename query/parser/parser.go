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

// Package parser parses the textual query language into a query.Query, and the
// line oriented insert format into triples. Both formats share the same terms:
//
//	?var  <iri>  prefix:local  "string"  42  9.5  true  a  <gt>
//
// Prefixed names are expanded using the caller's prefix table together with
// any PREFIX declarations in the input.
package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ebay/kgraph/query"
	"github.com/ebay/kgraph/rdf"
	"github.com/ebay/kgraph/util/cmp"
	kgunicode "github.com/ebay/kgraph/util/unicode"
	"github.com/sirupsen/logrus"
	"github.com/vektah/goparsify"
)

// MustParse parses a query and panics if an error occurs. It simplifies
// variable initialization. This is primarily meant for writing unit tests.
func MustParse(in string, prefixes map[string]string) *query.Query {
	q, err := Parse(in, prefixes)
	if err != nil {
		panic(fmt.Sprintf("unable to parse query: '%s': %v", strings.Replace(in, "\n", "\\n", -1), err))
	}
	return q
}

// Parse parses a SELECT query. Prefixed names are resolved against 'prefixes'
// and the query's own PREFIX declarations, which take precedence. Syntax errors
// and undeclared prefixes are returned as a *ParseError. The query isn't
// validated; query.Engine.Execute does that.
func Parse(in string, prefixes map[string]string) (*query.Query, error) {
	p := &parser{in: kgunicode.Normalize(in)}
	return p.parseQuery(prefixes)
}

// ParseInsert parses facts to load, one "subject predicate object" per line,
// interleaved with PREFIX declarations that apply to the lines after them.
// Blank lines and # comments are allowed. Subjects and predicates must be IRIs
// or prefixed names, the predicate may be 'a' for rdf:type, and objects may
// also be literals. Errors are returned as a *ParseError.
func ParseInsert(in string, prefixes map[string]string) ([]rdf.Triple, error) {
	return ParseInsertWithType(in, prefixes, rdf.Type)
}

// ParseInsertWithType is like ParseInsert, but 'a' stands for typePredicate.
func ParseInsertWithType(in string, prefixes map[string]string, typePredicate rdf.Node) ([]rdf.Triple, error) {
	if !typePredicate.IsIRI() {
		return nil, fmt.Errorf("type predicate must be an IRI, got %v", typePredicate)
	}
	p := &parser{in: kgunicode.Normalize(in)}
	return p.parseInsert(prefixes, typePredicate)
}

// parser implementation
type parser struct {
	in string
}

// parse reads the input using the supplied root parser. If its unable to
// fully parse the input a ParseError will be returned that includes the
// position of where it parsed to, and what the problem is.
func (p *parser) parse(typ string, parser goparsify.Parser) (*goparsify.Result, error) {
	// parse the input; see lang_def.go for the combinator semantics
	state := goparsify.NewState(p.in)
	state.WS = goparsify.NoWhitespace
	// consume head whitespace
	goparsify.UnicodeWhitespace(state)

	result := &goparsify.Result{}
	parser(state, result)
	if state.Errored() {
		exp := strings.TrimPrefix(fmt.Sprintf("%q", expectedText(&state.Error)), `"`)
		exp = strings.TrimSuffix(exp, `"`)
		return nil, p.errorAt(typ, state.Error.Pos(), "expected %s", exp)
	}
	// consume tail whitespace and comments and check for unparsed text
	sparqlWS(state)
	unparsed := state.Get()
	if unparsed != "" {
		return nil, p.errorAt(typ, state.Pos, "unparsed text: '%s'",
			strings.TrimRightFunc(unparsed, unicode.IsSpace))
	}
	return result, nil
}

func (p *parser) errorAt(typ string, offset int, format string, args ...interface{}) *ParseError {
	line, col := coordinates(p.in, offset)
	return &ParseError{
		ParseType: typ,
		Input:     p.in,
		Offset:    offset,
		Line:      line,
		Column:    col,
		Details:   fmt.Sprintf(format, args...),
	}
}

// ParseError captures more detailed information about a parsing error, and
// where it occurred.
type ParseError struct {
	// query or insert.
	ParseType string
	// The input string to the parser which resulted in this error.
	Input string
	// Offset is the byte offset into 'Input' at which the error ocurred.
	Offset int
	// Line is the line number in 'Input' at which the error ocurred.
	Line int
	// Column is the column (in runes) into the indicated Line that the error
	// ocurred. Line & Column represent the same point in 'Input' as 'Offset'.
	Column int
	// The specific parser error that ocurred.
	Details string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: line %d column %d: %s",
		p.ParseType, p.Line, p.Column, p.Details)
}

// coordinates returns the line & column of the supplied offset in the string
// 'input'. Offset is in bytes, the returned column value is in runes.
func coordinates(input string, atOffset int) (line, col int) {
	// Trim any trailing whitespace from the input, as most people wouldn't
	// consider it an expected place for an error.
	input = strings.TrimRightFunc(input, unicode.IsSpace)
	// Don't let atOffset be past the end of the input.
	atOffset = cmp.MinInt(atOffset, len(input))

	lines := strings.Split(input, "\n")
	current := 0
	line = 1
	for _, l := range lines {
		if current+len(l) >= atOffset {
			// offset is in bytes, but the reported column should be based on runes.
			col = utf8.RuneCountInString(l[:atOffset-current]) + 1
			return line, col
		}
		line++
		current += len(l) + 1 // remember to consume the \n
	}
	panic(fmt.Sprintf("shouldn't get here. Input was '%s' atOffset: %d", input, atOffset))
}

// expectedText extracts from the supplied goparsify Error the expected text
// i.e. the error from an unmatched parser. This relies on the format of the
// error message generated by goparsify.
func expectedText(e *goparsify.Error) string {
	msg := e.Error()
	expectedIdx := strings.Index(msg, "expected")
	if expectedIdx == -1 {
		logrus.WithField("err", msg).
			Warn("Got goparsify error with missing 'expected' string")
		return msg
	}
	expected := msg[expectedIdx+len("expected")+1:]
	return expected
}

// parseQuery parses the entire query and resolves its terms.
func (p *parser) parseQuery(prefixes map[string]string) (*query.Query, error) {
	result, err := p.parse("query", queryRoot)
	if err != nil {
		return nil, err
	}
	parsed, ok := result.Result.(*parsedQuery)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	r := newResolver(p, "query", prefixes)
	for _, decl := range parsed.prefixes {
		r.prefixes[decl.name] = decl.iri
	}
	return r.query(parsed)
}

// parseInsert parses the facts and resolves their terms.
func (p *parser) parseInsert(prefixes map[string]string, typePredicate rdf.Node) ([]rdf.Triple, error) {
	result, err := p.parse("insert", insertRoot)
	if err != nil {
		return nil, err
	}
	parsed, ok := result.Result.(*parsedInsert)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	r := newResolver(p, "insert", prefixes)
	r.typePredicate = typePredicate
	var triples []rdf.Triple
	for _, item := range parsed.items {
		switch item := item.(type) {
		case *prefixDecl:
			r.prefixes[item.name] = item.iri
		case *line:
			t, err := r.fact(item)
			if err != nil {
				return nil, err
			}
			triples = append(triples, t)
		default:
			return nil, fmt.Errorf("invalid insert item type: %T", item)
		}
	}
	return triples, nil
}
