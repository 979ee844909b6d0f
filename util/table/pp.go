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

// Package table formats data into a text-based table for human consumption.
package table

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ebay/kgraph/util/cmp"
	"github.com/ebay/kgraph/util/unicode"
)

// Options represents different ways to control how the table is generated
type Options int

const (
	// HeaderRow if specified will format the first row in the table
	// as a header (i.e. there is a separator between it and the next row)
	HeaderRow Options = 1 << iota
	// FooterRow if specified will format the last row of the table
	// as a footer (i.e. there is a separator between it and the previous row)
	FooterRow
	// SkipEmpty if specified will cause nothing to be generated in the case
	// that the table has no data (i.e. no rows besides the header & footer rows
	// if they are enabled)
	SkipEmpty
	// RightJustify indicates that cells should have their contents right
	// justified (left padded), rather than the default of left justified.
	RightJustify
	// JustifyNumbers right justifies the body cells that hold a number, and
	// justifies the remaining cells per RightJustify. Commas are ignored when
	// deciding whether a cell holds a number. Query results mix IRIs,
	// strings and numbers in one column, so this keeps the digits aligned.
	JustifyNumbers
)

func (o Options) numberOfChromeRows() int {
	r := 0
	if o.hasHeaderRow() {
		r++
	}
	if o.hasFooterRow() {
		r++
	}
	return r
}

func (o Options) skipEmpty() bool {
	return o&SkipEmpty != 0
}

func (o Options) hasHeaderRow() bool {
	return o&HeaderRow != 0
}

func (o Options) hasFooterRow() bool {
	return o&FooterRow != 0
}

// PrettyPrint writes 't' as a nicely formatted table to the supplied Writer.
//
// if HeaderRow / FooterRow options are specified then a divider will be added
// between the header and/or footer rows. Cells are allowed to be multi-line,
// use \n as a line break. If no Justify option is used, the default is to left
// justify. Rows shorter than the widest row are padded with empty cells. It
// returns the first error from writing to 'dest'.
func PrettyPrint(dest io.Writer, t [][]string, opts Options) error {
	if len(t) == 0 || (opts.skipEmpty() && len(t) <= opts.numberOfChromeRows()) {
		return nil
	}
	w := bufio.NewWriterSize(dest, 256)
	columns := 0
	for _, row := range t {
		columns = cmp.MaxInt(columns, len(row))
	}
	table := make([][]cell, len(t))
	for ridx, row := range t {
		table[ridx] = make([]cell, columns)
		for cidx := range table[ridx] {
			s := ""
			if cidx < len(row) {
				s = row[cidx]
			}
			table[ridx][cidx] = makeCell(s, opts.rightJustified(s, ridx == 0, ridx == len(t)-1))
		}
	}
	for cidx := 0; cidx < columns; cidx++ {
		maxWidth := 0
		for ridx := range table {
			maxWidth = cmp.MaxInt(maxWidth, table[ridx][cidx].Width())
		}
		for ridx := range table {
			c := &table[ridx][cidx]
			c.pad(c.Height(), maxWidth)
		}
	}
	divider := func() {
		for _, c := range table[0] {
			w.WriteString(" ")
			w.WriteString(strings.Repeat("-", c.Width()))
			w.WriteString(" |")
		}
		w.WriteString("\n")
	}
	for ridx, r := range table {
		maxHeight := 0
		for cidx := range r {
			maxHeight = cmp.MaxInt(maxHeight, r[cidx].Height())
		}
		for cidx := range r {
			r[cidx].pad(maxHeight, r[cidx].Width())
		}
		for lidx := 0; lidx < maxHeight; lidx++ {
			for cidx := range r {
				w.WriteString(" ")
				w.WriteString(r[cidx].lines[lidx])
				w.WriteString(" |")
			}
			w.WriteString("\n")
		}
		if (opts.hasHeaderRow() && (ridx == 0)) || (opts.hasFooterRow() && (ridx == len(table)-2)) {
			divider()
		}
	}
	return w.Flush()
}

// rightJustified returns true if the cell 's' should be left padded.
func (o Options) rightJustified(s string, first, last bool) bool {
	if o&RightJustify != 0 {
		return true
	}
	if o&JustifyNumbers == 0 {
		return false
	}
	if (first && o.hasHeaderRow()) || (last && o.hasFooterRow()) {
		return false
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

type cell struct {
	lines []string
	width int
	right bool
}

func makeCell(s string, right bool) cell {
	c := cell{
		lines: strings.Split(s, "\n"),
		right: right,
	}
	for _, l := range c.lines {
		c.width = cmp.MaxInt(c.width, charsWide(l))
	}
	return c
}

func (c *cell) Width() int {
	return c.width
}

func (c *cell) Height() int {
	return len(c.lines)
}

// update the cell by padding it to the supplied size, must be at least as large
// as it currently is
func (c *cell) pad(height, width int) {
	for len(c.lines) < height {
		c.lines = append(c.lines, "")
	}
	for i, l := range c.lines {
		lwidth := charsWide(l)
		if lwidth < width {
			pad := strings.Repeat(" ", width-lwidth)
			if c.right {
				c.lines[i] = pad + l
			} else {
				c.lines[i] = l + pad
			}
		}
	}
	c.width = width
}

// charsWide estimates how wide a string will be on a typical terminal or web
// browser. The problem is a bit harder than it appears thanks to Unicode; the
// corresponding unit tests have some interesting cases.
func charsWide(s string) int {
	return utf8.RuneCountInString(unicode.Normalize(s))
}
