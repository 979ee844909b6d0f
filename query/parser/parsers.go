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

package parser

import (
	"strconv"
	"strings"

	"github.com/vektah/goparsify"
)

// repeatZeroOrMore matches zero or more parsers and returns the value as
// .Child[n]. An optional separator can be provided and that value will be
// consumed but not returned. Only one separator can be provided.
//
// This and repeatOneOrMore exist because the difference between Some & Many is
// not obvious from the name.
func repeatZeroOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	return goparsify.Some(p, sep...)
}

// repeatOneOrMore matches one or more parsers and returns the value as
// .Child[n]. An optional separator can be provided and that value will be
// consumed but not returned. Only one separator can be provided.
func repeatOneOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	return goparsify.Many(p, sep...)
}

// uint64Literal parses a uint64 in base 10 from state.
func uint64Literal() goparsify.Parser {
	return goparsify.NewParser("uint64Literal", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		maxPos := ps.Pos // mark how far we have come
		len := len(ps.Input)

		for maxPos < len && ps.Input[maxPos] >= '0' && ps.Input[maxPos] <= '9' {
			maxPos++
		}
		if maxPos == ps.Pos {
			ps.ErrorHere("number")
			return
		}
		var err error
		node.Result, err = strconv.ParseUint(ps.Input[ps.Pos:maxPos], 10, 64)
		if err != nil {
			ps.ErrorHere("number")
			return
		}
		ps.Pos = maxPos
	})
}

// withWhitespace will set Auto Whitespace to 'ws' for parser and all its
// children. The original Whitespace settting will be restored once 'parser'
// returns.
func withWhitespace(ws goparsify.VoidParser, parserish goparsify.Parserish) goparsify.Parser {
	parser := goparsify.Parsify(parserish)
	return func(ps *goparsify.State, node *goparsify.Result) {
		oldWS := ps.WS
		ps.WS = ws
		parser(ps, node)
		ps.WS = oldWS
	}
}

// sparqlWS is a goparsify Whitespace parser that understands SPARQLs whitespace
// rules. Whitespace chars are ' ' \t \r \n only. # starts a comment which runs
// to the end of the line.
func sparqlWS(s *goparsify.State) {
	for s.Pos < len(s.Input) {
		switch s.Input[s.Pos] {
		case ' ', '\t', '\r', '\n':
			s.Pos++
		case '#':
			s.Pos++
			// consume the rest of the line
			for s.Pos < len(s.Input) {
				c := s.Input[s.Pos]
				s.Pos++
				if c == '\n' || c == '\r' {
					break
				}
			}
		default:
			return
		}
	}
}

// ignoreCase returns a parser that matches the supplied string exactly ignoring
// case.
func ignoreCase(match string) goparsify.Parser {
	lenMatch := len(match)
	return goparsify.NewParser("i/"+match+"/", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		in := s.Get()
		if len(in) < lenMatch || !strings.EqualFold(match, in[:lenMatch]) {
			s.ErrorHere(match)
			return
		}
		s.Advance(lenMatch)
		r.Token = in[:lenMatch]
	})
}

// located runs parser and records the offset at which its result starts, once
// leading whitespace is skipped, on results that implement placed.
func located(parserish goparsify.Parserish) goparsify.Parser {
	parser := goparsify.Parsify(parserish)
	return func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		start := ps.Pos
		parser(ps, node)
		if ps.Errored() {
			return
		}
		if p, ok := node.Result.(placed); ok {
			p.place(start)
		}
	}
}

func isNameStartChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isNameChar(c byte) bool {
	return isNameStartChar(c) || (c >= '0' && c <= '9')
}

// isLocalNameChar reports whether 'c' may appear in the local part of a
// prefixed name like ps2:GrandTheftAuto-SanAndreas.
func isLocalNameChar(c byte) bool {
	return isNameChar(c) || c == '-' || c == '.' || c == '%' || c == '(' || c == ')'
}

// isWordEnd reports whether the input at 'pos' can follow a keyword.
func isWordEnd(in string, pos int) bool {
	if pos >= len(in) {
		return true
	}
	switch in[pos] {
	case ' ', '\t', '\r', '\n', '#', '.', '}', ')':
		return true
	}
	return false
}

// variableParser parses ?name.
func variableParser() goparsify.Parser {
	return goparsify.NewParser("variable", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		if len(in) < 2 || in[0] != '?' {
			ps.ErrorHere("variable")
			return
		}
		n := 1
		for n < len(in) && isNameChar(in[n]) {
			n++
		}
		if n == 1 {
			ps.ErrorHere("variable name")
			return
		}
		node.Token = in[:n]
		node.Result = &variable{name: in[1:n]}
		ps.Advance(n)
	})
}

// iriParser parses <iri>. The IRI can't contain whitespace or angle brackets.
func iriParser() goparsify.Parser {
	return goparsify.NewParser("iri", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		if len(in) < 2 || in[0] != '<' {
			ps.ErrorHere("<iri>")
			return
		}
		end := strings.IndexAny(in[1:], "<> \t\r\n")
		if end < 1 || in[end+1] != '>' {
			ps.ErrorHere("<iri>")
			return
		}
		node.Token = in[:end+2]
		node.Result = &iriRef{iri: in[1 : end+1]}
		ps.Advance(end + 2)
	})
}

// prefixNameParser parses the "ps2:" part of a PREFIX declaration. The name
// before the colon may be empty.
func prefixNameParser() goparsify.Parser {
	return goparsify.NewParser("prefix name", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		n := prefixLen(in)
		if n >= len(in) || in[n] != ':' {
			ps.ErrorHere("prefix name")
			return
		}
		node.Token = in[:n]
		ps.Advance(n + 1)
	})
}

// prefixLen returns the length of the prefix name at the start of 'in'.
func prefixLen(in string) int {
	if len(in) == 0 || !isNameStartChar(in[0]) {
		return 0
	}
	n := 1
	for n < len(in) && (isNameChar(in[n]) || in[n] == '-') {
		n++
	}
	return n
}

// qnameParser parses prefixed names like ps2:Game. A trailing '.' isn't part
// of the name, so that patterns may end with " ." or ".".
func qnameParser() goparsify.Parser {
	return goparsify.NewParser("prefixed name", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		n := prefixLen(in)
		if n >= len(in) || in[n] != ':' {
			ps.ErrorHere("prefixed name")
			return
		}
		end := n + 1
		for end < len(in) && isLocalNameChar(in[end]) {
			end++
		}
		for end > n+1 && in[end-1] == '.' {
			end--
		}
		node.Token = in[:end]
		node.Result = &qname{prefix: in[:n], local: in[n+1 : end]}
		ps.Advance(end)
	})
}

// keyword returns a parser that matches 'word' exactly, when it's not followed
// by more name characters. The result is set by calling 'result'.
func keyword(word string, result func() interface{}) goparsify.Parser {
	return goparsify.NewParser(word, func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		in := ps.Get()
		if !strings.HasPrefix(in, word) || !isWordEnd(in, len(word)) {
			ps.ErrorHere(word)
			return
		}
		node.Token = word
		node.Result = result()
		ps.Advance(len(word))
	})
}
