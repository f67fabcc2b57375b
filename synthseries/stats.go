// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/hwpq/synthperf/synthfmt"
)

// Stats describes the spread of achieved frequencies across the trials
// of one report.
type Stats struct {
	N                 int
	Min, Max          float64
	Mean, StdDev      float64
	Median            float64
	TailMean          float64 // mean of the last TailN trials in file order
	TailN             int
	TargetMet         int     // trials whose achieved frequency reached the target
	BestTarget        float64 // target frequency of the best trial
	FirstMissedTarget float64 // lowest target that was not met, or NaN
}

// DefaultTail is the number of trailing trials averaged by TrialStats.
const DefaultTail = 3

// TrialStats computes Stats over the achieved frequencies of rep. The
// tail mean averages the last tail trials, or all of them if there
// are fewer. For a report with no trials every statistic is NaN.
func TrialStats(rep *synthfmt.Report, tail int) Stats {
	st := Stats{N: len(rep.Trials), FirstMissedTarget: math.NaN()}
	if st.N == 0 {
		nan := math.NaN()
		st.Min, st.Max, st.Mean, st.StdDev, st.Median, st.TailMean, st.BestTarget = nan, nan, nan, nan, nan, nan, nan
		return st
	}

	xs := make([]float64, len(rep.Trials))
	for i, t := range rep.Trials {
		xs[i] = t.Achieved
		if t.Achieved >= t.Target {
			st.TargetMet++
		} else if math.IsNaN(st.FirstMissedTarget) || t.Target < st.FirstMissedTarget {
			st.FirstMissedTarget = t.Target
		}
	}
	st.BestTarget = rep.Trials[BestTrial(rep)].Target

	if tail <= 0 || tail > len(xs) {
		tail = len(xs)
	}
	st.TailN = tail
	st.TailMean = stats.Mean(xs[len(xs)-tail:])

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	sample := stats.Sample{Xs: sorted, Sorted: true}
	st.Min, st.Max = sample.Bounds()
	st.Mean = sample.Mean()
	st.Median = sample.Quantile(0.5)
	if st.N > 1 {
		st.StdDev = sample.StdDev()
	}
	return st
}
