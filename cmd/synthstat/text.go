// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/hwpq/synthperf/internal/texttab"
	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// formatValue formats a measurement of metric m for a table cell.
func formatValue(m synthfmt.Metric, v float64) string {
	switch {
	case m.Integer():
		return fmt.Sprintf("%.0f", v)
	case m.IsUtilization():
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

func formatPoint(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsNaN(v):
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

// writeSeries prints the selected trial at every queue size of s.
func writeSeries(w io.Writer, s *synthseries.Series) error {
	metrics := synthfmt.Metrics()

	if err := writeTitle(w, s.Arch); err != nil {
		return err
	}
	var t texttab.Table
	t.Row().Cells("queue_size", "target")
	for _, m := range metrics {
		t.Cell(m.String())
	}
	t.Rule('-')
	for i := 0; i < len(metrics)+2; i++ {
		t.SetAlign(i, texttab.Right)
	}
	for _, q := range s.QueueSizes() {
		sum := s.Summaries[q]
		t.Row().Cell(strconv.Itoa(q)).Cellf("%g", sum.Target)
		for _, m := range metrics {
			if v, ok := sum.Value(m); ok {
				t.Cell(formatValue(m, v))
			} else {
				t.Cell("-")
			}
		}
	}
	return t.Format(w)
}

// writePoints prints derived series side by side, one row per queue
// size.
func writePoints(w io.Writer, title string, names []string, series map[string][]synthseries.Point) error {
	cells := make(map[int]map[string]float64)
	var qs []int
	for name, pts := range series {
		for _, p := range pts {
			if cells[p.QueueSize] == nil {
				cells[p.QueueSize] = make(map[string]float64)
				qs = append(qs, p.QueueSize)
			}
			cells[p.QueueSize][name] = p.Value
		}
	}
	sort.Ints(qs)

	if err := writeTitle(w, title); err != nil {
		return err
	}
	var t texttab.Table
	t.Row().Cell("queue_size").Cells(names...).Rule('-')
	for i := 0; i <= len(names); i++ {
		t.SetAlign(i, texttab.Right)
	}
	for _, q := range qs {
		t.Row().Cell(strconv.Itoa(q))
		for _, name := range names {
			if v, ok := cells[q][name]; ok {
				t.Cell(formatPoint(v))
			} else {
				t.Cell("-")
			}
		}
	}
	return t.Format(w)
}

// writeTitle prints a heading followed by a blank line.
func writeTitle(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n\n", title)
	return err
}
