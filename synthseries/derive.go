// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"math"

	"github.com/hwpq/synthperf/synthfmt"
)

// Performance returns the estimated throughput of op at each queue
// size of s, in millions of operations per second: the achieved
// frequency times the factor for s.Arch.
func Performance(s *Series, f Factors, op Operation) []Point {
	pts := make([]Point, 0, len(s.Summaries))
	for q, sum := range s.Summaries {
		pts = append(pts, Point{q, performance(sum, f, op, s.Arch)})
	}
	return sortPoints(pts)
}

func performance(sum *Summary, f Factors, op Operation, arch string) float64 {
	return sum.Achieved * f.Factor(op, arch, sum.QueueSize)
}

// MaxUtilization returns the utilization percentage of the binding
// resource of sum: the largest of its LUT, register and BRAM
// utilization. A utilization missing from the report counts as 0.
func MaxUtilization(sum *Summary) float64 {
	u := 0.0
	for _, m := range []synthfmt.Metric{synthfmt.LUTsUtil, synthfmt.RegistersUtil, synthfmt.BRAMUtil} {
		if v, ok := sum.Values[m]; ok && v > u {
			u = v
		}
	}
	return u
}

// ResourceUtilization returns the binding resource utilization at each
// queue size of s.
func ResourceUtilization(s *Series) []Point {
	pts := make([]Point, 0, len(s.Summaries))
	for q, sum := range s.Summaries {
		pts = append(pts, Point{q, MaxUtilization(sum)})
	}
	return sortPoints(pts)
}

// Efficiency returns performance per percent of binding resource at
// each queue size of s. Where performance is not positive the
// efficiency is +Inf.
func Efficiency(s *Series, f Factors, op Operation) []Point {
	pts := make([]Point, 0, len(s.Summaries))
	for q, sum := range s.Summaries {
		perf := performance(sum, f, op, s.Arch)
		eff := math.Inf(1)
		if perf > 0 {
			eff = perf / MaxUtilization(sum)
		}
		pts = append(pts, Point{q, eff})
	}
	return sortPoints(pts)
}
