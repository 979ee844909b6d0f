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

package query

import (
	"fmt"
	"strings"

	"github.com/ebay/kgraph/rdf"
)

// Term is one position of a pattern or one side of a comparison. It's either a
// variable, to be bound during evaluation, or a constant Node.
type Term struct {
	variable string
	value    rdf.Node
}

// Var returns a Term for the named variable. The name excludes the leading '?'.
func Var(name string) Term {
	return Term{variable: name}
}

// Const returns a Term holding a constant value.
func Const(value rdf.Node) Term {
	return Term{value: value}
}

// IsVar returns true if the term is a variable.
func (t Term) IsVar() bool {
	return t.variable != ""
}

// IsZero returns true if the term is neither a variable nor a constant.
func (t Term) IsZero() bool {
	return t.variable == "" && t.value.IsNil()
}

// Variable returns the variable name, or "" for a constant.
func (t Term) Variable() string {
	return t.variable
}

// Value returns the constant value, or rdf.Nil for a variable.
func (t Term) Value() rdf.Node {
	return t.value
}

func (t Term) String() string {
	if t.IsVar() {
		return "?" + t.variable
	}
	return t.value.String()
}

// Pattern is one line of a query's WHERE clause. It's implemented by
// *TriplePattern and *TypePattern.
type Pattern interface {
	// Variables returns the names of the variables in the pattern, in position
	// order, without duplicates.
	Variables() []string
	String() string
	isPattern()
}

var _ = []Pattern{
	(*TriplePattern)(nil),
	(*TypePattern)(nil),
}

// TriplePattern matches triples in the store. Variables match anything and are
// bound to the matching triple's values.
type TriplePattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (*TriplePattern) isPattern() {}

// Variables implements Pattern.
func (p *TriplePattern) Variables() []string {
	return variables(p.Subject, p.Predicate, p.Object)
}

func (p *TriplePattern) String() string {
	return fmt.Sprintf("%v %v %v", p.Subject, p.Predicate, p.Object)
}

// TypePattern matches when Subject is an instance of Class, either explicitly
// or through the class hierarchy. It's evaluated by the reasoner rather than by
// matching type triples directly.
type TypePattern struct {
	Subject Term
	Class   Term
}

func (*TypePattern) isPattern() {}

// Variables implements Pattern.
func (p *TypePattern) Variables() []string {
	return variables(p.Subject, p.Class)
}

func (p *TypePattern) String() string {
	return fmt.Sprintf("%v a %v", p.Subject, p.Class)
}

func variables(terms ...Term) []string {
	var res []string
	for _, t := range terms {
		if t.IsVar() && !containsString(res, t.variable) {
			res = append(res, t.variable)
		}
	}
	return res
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Operator is a comparison operator used in filters and HAVING clauses.
type Operator int

// The supported comparison operators.
const (
	OpEqual Operator = iota + 1
	OpNotEqual
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
	// OpContains is true when the left side's lexical form contains the right
	// side's lexical form.
	OpContains
)

// Operators lists every Operator.
var Operators = []Operator{
	OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpContains,
}

// Symbol returns the operator's name as written in a query, without the angle
// brackets.
func (op Operator) Symbol() string {
	switch op {
	case OpEqual:
		return "eq"
	case OpNotEqual:
		return "notEqual"
	case OpLess:
		return "lt"
	case OpLessOrEqual:
		return "lte"
	case OpGreater:
		return "gt"
	case OpGreaterOrEqual:
		return "gte"
	case OpContains:
		return "contains"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

func (op Operator) String() string {
	return "<" + op.Symbol() + ">"
}

// Comparison is a predicate over a Binding. Filters and HAVING clauses are
// lists of Comparisons that must all hold.
type Comparison struct {
	Left  Term
	Op    Operator
	Right Term
}

func (c Comparison) String() string {
	return fmt.Sprintf("%v %v %v", c.Left, c.Op, c.Right)
}

// Count describes the COUNT aggregate computed for each group.
type Count struct {
	// Of is the variable counted. Rows where it's unbound aren't counted. Of is
	// empty for COUNT(*), which counts every row.
	Of string
	// As names the variable holding the count.
	As string
}

func (c *Count) String() string {
	of := "*"
	if c.Of != "" {
		of = "?" + c.Of
	}
	return fmt.Sprintf("(COUNT(%s) AS ?%s)", of, c.As)
}

// SortDirection is the direction of an ORDER BY key.
type SortDirection int

// The possible SortDirections.
const (
	SortAsc SortDirection = iota + 1
	SortDesc
)

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "ASC"
	case SortDesc:
		return "DESC"
	default:
		return fmt.Sprintf("SortDirection(%d)", int(d))
	}
}

// OrderCondition is one ORDER BY key.
type OrderCondition struct {
	On        string
	Direction SortDirection
}

func (o OrderCondition) String() string {
	return fmt.Sprintf("%v(?%s)", o.Direction, o.On)
}

// Query is a conjunctive graph pattern query with optional filtering,
// grouping, ordering and paging.
type Query struct {
	// Select lists the variables in the result, in column order. It may include
	// Count.As.
	Select []string
	// Where is evaluated in order, each pattern joined against the bindings
	// produced by the patterns before it.
	Where []Pattern
	// Filters are applied to every binding produced by Where.
	Filters []Comparison
	// GroupBy partitions the filtered bindings by these variables' values.
	GroupBy []string
	// Count is computed per group. If GroupBy is empty, all rows form one group.
	Count *Count
	// Having is applied to each group.
	Having []Comparison
	// OrderBy sorts the rows by each key in turn. The sort is stable.
	OrderBy []OrderCondition
	// Distinct removes duplicate rows after projection.
	Distinct bool
	// Limit caps the number of result rows; 0 means no limit.
	Limit uint64
	// Offset skips this many result rows.
	Offset uint64
}

// grouped returns true if the query produces one row per group.
func (q *Query) grouped() bool {
	return len(q.GroupBy) > 0 || q.Count != nil
}

// PatternVariables returns every variable named in Where, in order of first
// appearance.
func (q *Query) PatternVariables() []string {
	var res []string
	for _, p := range q.Where {
		for _, v := range p.Variables() {
			if !containsString(res, v) {
				res = append(res, v)
			}
		}
	}
	return res
}

func (q *Query) String() string {
	b := strings.Builder{}
	b.WriteString("SELECT ")
	if q.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, v := range q.Select {
		if i > 0 {
			b.WriteByte(' ')
		}
		if q.Count != nil && v == q.Count.As {
			b.WriteString(q.Count.String())
		} else {
			b.WriteString("?" + v)
		}
	}
	b.WriteString("\nWHERE {\n")
	for _, p := range q.Where {
		fmt.Fprintf(&b, "  %v\n", p)
	}
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "  %v\n", f)
	}
	b.WriteString("}")
	if len(q.GroupBy) > 0 {
		b.WriteString("\nGROUP BY")
		for _, v := range q.GroupBy {
			b.WriteString(" ?" + v)
		}
	}
	for i, h := range q.Having {
		if i == 0 {
			b.WriteString("\nHAVING")
		}
		fmt.Fprintf(&b, " %v", h)
	}
	if len(q.OrderBy) > 0 {
		b.WriteString("\nORDER BY")
		for _, o := range q.OrderBy {
			fmt.Fprintf(&b, " %v", o)
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&b, "\nOFFSET %d", q.Offset)
	}
	return b.String()
}
