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
	"github.com/ebay/kgraph/query"
	p "github.com/vektah/goparsify"
)

var (
	// queryRoot is the parser function called by Parse. It extracts the query
	// in its entirety.
	queryRoot p.Parser
	// insertRoot is the parser function called by ParseInsert. It extracts
	// PREFIX declarations and facts, one per line.
	insertRoot p.Parser
)

func init() {
	// If you need to debug what the parser is doing, you can enable goparsify's
	// built in debug support by building with -tags debug. See the docs for
	// more details https://github.com/vektah/goparsify#debugging-parsers
	//
	// The parser_debug.go file will setup sending the parser debug output to
	// stdOut when the debug tag is used.

	variable := located(variableParser()) // ?game
	iri := iriParser()                    // <http://example.org/ps2games#Game>
	qname := qnameParser()                // ps2:Game
	isType := p.Any(                      // ?game a ps2:Game || ?game isType ps2:Game
		keyword("a", newTypeKeyword("a")),
		keyword("isType", newTypeKeyword("isType")))
	literalBool := p.Any( // true || false
		keyword("true", boolLiteral(true)),
		keyword("false", boolLiteral(false)))
	literalNumber := p.NumberLit().Map(literalNumber)    // 9 || 9.5 || -1
	literalString := p.StringLit(`"`).Map(literalString) // "Final Fantasy X"

	opEQ := p.Exact("<eq>").Map(bindOpResult(query.OpEqual))
	opNEQ := p.Exact("<notEqual>").Map(bindOpResult(query.OpNotEqual))
	opGT := p.Exact("<gt>").Map(bindOpResult(query.OpGreater))
	opGTE := p.Exact("<gte>").Map(bindOpResult(query.OpGreaterOrEqual))
	opLT := p.Exact("<lt>").Map(bindOpResult(query.OpLess))
	opLTE := p.Exact("<lte>").Map(bindOpResult(query.OpLessOrEqual))
	opContains := p.Exact("<contains>").Map(bindOpResult(query.OpContains))
	operator := p.Any(opEQ, opNEQ, opGT, opGTE, opLT, opLTE, opContains)

	// operators must be tried before IRIs, as they look alike.
	term := located(p.Any(variable, operator, iri, literalString, literalNumber,
		literalBool, isType, qname))

	// The first term can't begin anything else, so once it's matched the rest
	// of the line must follow.
	line := p.Seq(term, p.Cut(), term, term, p.Maybe(".")).Map(termLine)
	prefixDecl := p.Seq(ignoreCase("PREFIX"), p.Cut(), prefixNameParser(), iriParser()).Map(prefixDeclaration)

	// SolutionModifiers
	limit := p.Seq(ignoreCase("LIMIT"), p.Cut(), uint64Literal()).Map(child(2))
	offset := p.Seq(ignoreCase("OFFSET"), p.Cut(), uint64Literal()).Map(child(2))
	limitOffset := p.Any(
		p.Seq(limit, p.Maybe(offset)).Map(limitOffset),
		p.Seq(offset, p.Maybe(limit)).Map(offsetLimit))
	orderByItem := p.Any(
		variable.Map(orderBy(query.SortAsc)),
		p.Seq(ignoreCase("ASC"), "(", variable, ")").Map(child(2)).Map(orderBy(query.SortAsc)),
		p.Seq(ignoreCase("DESC"), "(", variable, ")").Map(child(2)).Map(orderBy(query.SortDesc)))
	orderBy := p.Seq(ignoreCase("ORDER"), p.Cut(), ignoreCase("BY"), p.Cut(), repeatOneOrMore(orderByItem)).Map(orderBys)
	groupBy := p.Seq(ignoreCase("GROUP"), p.Cut(), ignoreCase("BY"), p.Cut(), repeatOneOrMore(variable)).Map(groupBy)
	having := p.Seq(ignoreCase("HAVING"), p.Cut(), repeatOneOrMore(line)).Map(having)

	distinct := ignoreCase("DISTINCT")
	count := p.Seq("(", ignoreCase("COUNT"), p.Cut(), "(", p.Any("*", variable), ")",
		ignoreCase("AS"), variable, ")").Map(countExpression)
	selectExprs := p.Any("*", repeatOneOrMore(p.Any(count, variable))).Map(selectExprs)

	whereClause := p.Seq(p.Any("{", p.Seq(ignoreCase("WHERE"), "{")), repeatOneOrMore(line), "}").Map(whereLines)
	selectQuery := p.Seq(repeatZeroOrMore(prefixDecl), ignoreCase("SELECT"), p.Maybe(distinct), selectExprs,
		whereClause, p.Maybe(groupBy), p.Maybe(having), p.Maybe(orderBy), p.Maybe(limitOffset)).Map(selectQuery)
	queryRoot = withWhitespace(sparqlWS, selectQuery)

	insertRoot = withWhitespace(sparqlWS, repeatZeroOrMore(p.Any(prefixDecl, line)).Map(insertItems))
}
