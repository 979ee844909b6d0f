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

import "fmt"

// DefinitionError describes a query that can't be evaluated, such as one that
// references a variable no pattern binds. It's reported before evaluation
// starts.
type DefinitionError struct {
	// Clause is where the problem is: "SELECT", "WHERE", "FILTER", "GROUP BY",
	// "COUNT", "HAVING" or "ORDER BY".
	Clause string
	// Variable is the offending variable, if there is one.
	Variable string
	// Reason describes the problem.
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("invalid query: %s: %s", e.Clause, e.Reason)
	}
	return fmt.Sprintf("invalid query: %s: variable ?%s %s", e.Clause, e.Variable, e.Reason)
}

func definitionErr(clause, variable, reason string) error {
	return &DefinitionError{Clause: clause, Variable: variable, Reason: reason}
}

// Validate checks the query for definition errors. It returns nil or a
// *DefinitionError.
//
// Every variable used outside the WHERE clause must be bound by some pattern.
// When the query is grouped, HAVING and ORDER BY may only reference the
// grouping variables, the selected variables and the count.
func (q *Query) Validate() error {
	if len(q.Where) == 0 {
		return definitionErr("WHERE", "", "at least one pattern is required")
	}
	for _, p := range q.Where {
		if err := validatePattern(p); err != nil {
			return err
		}
	}
	bound := q.PatternVariables()
	isBound := func(v string) bool {
		return containsString(bound, v)
	}
	for _, f := range q.Filters {
		if err := validateComparison("FILTER", f, isBound, "is not bound by any pattern"); err != nil {
			return err
		}
	}
	for _, v := range q.GroupBy {
		if !isBound(v) {
			return definitionErr("GROUP BY", v, "is not bound by any pattern")
		}
	}
	if q.Count != nil {
		if q.Count.As == "" {
			return definitionErr("COUNT", "", "the count must be named with AS")
		}
		if isBound(q.Count.As) {
			return definitionErr("COUNT", q.Count.As, "is already bound by a pattern")
		}
		if q.Count.Of != "" && !isBound(q.Count.Of) {
			return definitionErr("COUNT", q.Count.Of, "is not bound by any pattern")
		}
	}
	if len(q.Select) == 0 {
		return definitionErr("SELECT", "", "at least one variable must be selected")
	}
	for _, v := range q.Select {
		if !isBound(v) && !q.isCount(v) {
			return definitionErr("SELECT", v, "is not bound by any pattern")
		}
	}
	if len(q.Having) > 0 && !q.grouped() {
		return definitionErr("HAVING", "", "requires GROUP BY or COUNT")
	}
	// After grouping, only the grouping variables and the count have a
	// value that's the same across the group. A selected variable outside
	// GROUP BY is just the first binding's value, so HAVING and ORDER BY may
	// not use it.
	inRow := isBound
	rowReason := "is not bound by any pattern"
	if q.grouped() {
		inRow = func(v string) bool {
			return containsString(q.GroupBy, v) || q.isCount(v)
		}
		rowReason = "is not available after grouping"
	}
	for _, h := range q.Having {
		if err := validateComparison("HAVING", h, inRow, rowReason); err != nil {
			return err
		}
	}
	for _, o := range q.OrderBy {
		if !inRow(o.On) {
			return definitionErr("ORDER BY", o.On, rowReason)
		}
		if o.Direction != SortAsc && o.Direction != SortDesc {
			return definitionErr("ORDER BY", o.On, fmt.Sprintf("has invalid direction %v", o.Direction))
		}
	}
	return nil
}

func (q *Query) isCount(v string) bool {
	return q.Count != nil && q.Count.As == v
}

func validatePattern(p Pattern) error {
	switch p := p.(type) {
	case *TriplePattern:
		if p.Subject.IsZero() || p.Predicate.IsZero() || p.Object.IsZero() {
			return definitionErr("WHERE", "", fmt.Sprintf("pattern %v has an empty term", p))
		}
		if !p.Subject.IsVar() && !p.Subject.Value().IsIRI() {
			return definitionErr("WHERE", "", fmt.Sprintf("pattern %v has a literal subject", p))
		}
		if !p.Predicate.IsVar() && !p.Predicate.Value().IsIRI() {
			return definitionErr("WHERE", "", fmt.Sprintf("pattern %v has a literal predicate", p))
		}
	case *TypePattern:
		if p.Subject.IsZero() || p.Class.IsZero() {
			return definitionErr("WHERE", "", fmt.Sprintf("pattern %v has an empty term", p))
		}
		if !p.Class.IsVar() && !p.Class.Value().IsIRI() {
			return definitionErr("WHERE", "", fmt.Sprintf("pattern %v has a literal class", p))
		}
	case nil:
		return definitionErr("WHERE", "", "nil pattern")
	default:
		panic(fmt.Sprintf("Unexpected pattern type %T %v", p, p))
	}
	return nil
}

func validateComparison(clause string, c Comparison, known func(string) bool, reason string) error {
	for _, t := range []Term{c.Left, c.Right} {
		if t.IsZero() {
			return definitionErr(clause, "", fmt.Sprintf("comparison %v has an empty term", c))
		}
		if t.IsVar() && !known(t.Variable()) {
			return definitionErr(clause, t.Variable(), reason)
		}
	}
	switch c.Op {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual, OpContains:
		return nil
	default:
		return definitionErr(clause, "", fmt.Sprintf("comparison %v has an unknown operator", c))
	}
}
