// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Its building methods return the Table so calls can be chained.
type Table struct {
	rows  []row
	cols  int
	align []Align
}

type row struct {
	rule  rune // if non-zero, the row is a horizontal rule
	cells []cell
}

type cell struct {
	value string
	align Align
	set   bool // align was given for this cell
}

// Align is the horizontal alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		return strings.Repeat(" ", n/2) + s
	case Right:
		return strings.Repeat(" ", n) + s
	}
	return s
}

// SetAlign sets the default alignment of column col.
func (t *Table) SetAlign(col int, a Align) *Table {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
	return t
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, row{})
	return t
}

// Rule adds a row drawn with ch across the full table width.
func (t *Table) Rule(ch rune) *Table {
	t.rows = append(t.rows, row{rule: ch})
	return t
}

func (t *Table) last() *row {
	if len(t.rows) == 0 || t.rows[len(t.rows)-1].rule != 0 {
		t.Row()
	}
	return &t.rows[len(t.rows)-1]
}

// Cell appends a cell to the current row using the column's default
// alignment.
func (t *Table) Cell(value string) *Table {
	return t.add(cell{value: value})
}

// AlignedCell appends a cell with its own alignment.
func (t *Table) AlignedCell(value string, a Align) *Table {
	return t.add(cell{value: value, align: a, set: true})
}

// Cells appends one cell per value.
func (t *Table) Cells(values ...string) *Table {
	for _, v := range values {
		t.Cell(v)
	}
	return t
}

// Cellf appends a cell formatted with fmt.Sprintf.
func (t *Table) Cellf(format string, args ...interface{}) *Table {
	return t.Cell(fmt.Sprintf(format, args...))
}

func (t *Table) add(c cell) *Table {
	r := t.last()
	r.cells = append(r.cells, c)
	if len(r.cells) > t.cols {
		t.cols = len(r.cells)
	}
	return t
}

// Format writes t to w. Columns are separated by two spaces and no
// line has trailing spaces.
func (t *Table) Format(w io.Writer) error {
	const gap = 2

	widths := make([]int, t.cols)
	for _, r := range t.rows {
		for i, c := range r.cells {
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}
	total := 0
	for i, n := range widths {
		if i > 0 {
			total += gap
		}
		total += n
	}

	var b strings.Builder
	for _, r := range t.rows {
		b.Reset()
		if r.rule != 0 {
			b.WriteString(strings.Repeat(string(r.rule), total))
		}
		for i, c := range r.cells {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			a := c.align
			if !c.set && i < len(t.align) {
				a = t.align[i]
			}
			s := a.pad(c.value, widths[i])
			if a != Right {
				s += strings.Repeat(" ", widths[i]-utf8.RuneCountInString(s))
			}
			b.WriteString(s)
		}
		if _, err := io.WriteString(w, strings.TrimRight(b.String(), " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
