// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hwpq/synthperf/synthfmt"
)

// A Series collects the summaries of one architecture variant, keyed
// by queue size.
type Series struct {
	// Arch names the architecture variant, e.g. "register_tree" or
	// "register_array_enq_enabled".
	Arch string

	Summaries map[int]*Summary
}

// NewSeries returns an empty Series for arch.
func NewSeries(arch string) *Series {
	return &Series{Arch: arch, Summaries: make(map[int]*Summary)}
}

// Add inserts sum under its queue size. A summary already present for
// that queue size is replaced.
func (s *Series) Add(sum *Summary) {
	if _, ok := s.Summaries[sum.QueueSize]; ok {
		logrus.WithFields(logrus.Fields{
			"arch":       s.Arch,
			"queue_size": sum.QueueSize,
		}).Warn("duplicate queue size, keeping the last report")
	}
	s.Summaries[sum.QueueSize] = sum
}

// QueueSizes returns the queue sizes of s in ascending order.
func (s *Series) QueueSizes() []int {
	qs := make([]int, 0, len(s.Summaries))
	for q := range s.Summaries {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

// Len returns the number of queue sizes in s.
func (s *Series) Len() int {
	return len(s.Summaries)
}

// BuildSeries summarizes each report and collects the summaries by
// queue size. If two reports share a queue size, the later one wins.
// It fails if any report is empty.
func BuildSeries(arch string, reps []*synthfmt.Report) (*Series, error) {
	s := NewSeries(arch)
	for _, rep := range reps {
		sum, err := Summarize(rep)
		if err != nil {
			return nil, err
		}
		s.Add(sum)
	}
	return s, nil
}

// A Point is one value of a derived series.
type Point struct {
	QueueSize int
	Value     float64
}

func sortPoints(pts []Point) []Point {
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].QueueSize < pts[j].QueueSize
	})
	return pts
}

// MetricSeries returns the value of metric m at every queue size of s
// that has one.
func MetricSeries(s *Series, m synthfmt.Metric) []Point {
	pts := make([]Point, 0, len(s.Summaries))
	for q, sum := range s.Summaries {
		if v, ok := sum.Value(m); ok {
			pts = append(pts, Point{q, v})
		}
	}
	return sortPoints(pts)
}
