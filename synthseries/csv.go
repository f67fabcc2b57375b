// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/hwpq/synthperf/synthfmt"
)

func strof(x float64) string {
	if math.IsInf(x, 1) {
		return "inf"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteCSV writes one row per queue size of s, with a column for the
// target frequency of the selected trial and one for each metric.
// Missing measurements are written as empty cells.
func WriteCSV(out io.Writer, s *Series) error {
	w := csv.NewWriter(out)
	metrics := synthfmt.Metrics()
	header := []string{"arch", "queue_size", "target_frequency_mhz"}
	for _, m := range metrics {
		header = append(header, m.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, q := range s.QueueSizes() {
		sum := s.Summaries[q]
		row := []string{s.Arch, strconv.Itoa(q), strof(sum.Target)}
		for _, m := range metrics {
			if v, ok := sum.Value(m); ok {
				row = append(row, strof(v))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WritePointsCSV writes derived series side by side: one row per queue
// size that appears in any of them, one column per name in names.
func WritePointsCSV(out io.Writer, names []string, series map[string][]Point) error {
	w := csv.NewWriter(out)
	if err := w.Write(append([]string{"queue_size"}, names...)); err != nil {
		return err
	}

	cells := make(map[int]map[string]float64)
	for name, pts := range series {
		for _, p := range pts {
			if cells[p.QueueSize] == nil {
				cells[p.QueueSize] = make(map[string]float64)
			}
			cells[p.QueueSize][name] = p.Value
		}
	}
	qs := make([]int, 0, len(cells))
	for q := range cells {
		qs = append(qs, q)
	}
	sort.Ints(qs)

	for _, q := range qs {
		row := []string{strconv.Itoa(q)}
		for _, name := range names {
			if v, ok := cells[q][name]; ok {
				row = append(row, strof(v))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
