// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthseries derives cross-queue-size series from synthesis
// reports.
//
// Each report is reduced to a Summary of its best trial, the one with
// the highest achieved frequency. Summaries of one architecture are
// collected into a Series keyed by queue size, from which throughput,
// binding resource utilization and efficiency series are computed.
// Every derived series is a []Point sorted by ascending queue size.
package synthseries

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/hwpq/synthperf/synthfmt"
)

// ErrEmptyReport is returned by Summarize for a report with no trials.
var ErrEmptyReport = errors.New("report has no trials")

// A Summary is the best trial of a report: the trial with the highest
// achieved frequency, together with every measurement reported for
// it.
type Summary struct {
	QueueSize int
	Target    float64 // target frequency of the selected trial, MHz
	Achieved  float64 // achieved frequency, MHz

	// Values holds the optional measurements of the selected trial.
	Values map[synthfmt.Metric]float64
}

// Value returns the value of metric m and whether s has one.
func (s *Summary) Value(m synthfmt.Metric) (float64, bool) {
	if m == synthfmt.AchievedFrequency {
		return s.Achieved, true
	}
	v, ok := s.Values[m]
	return v, ok
}

// BestTrial returns the index of the trial of rep with the maximum
// achieved frequency, or -1 if rep has no trials. Ties go to the
// earliest trial in file order.
func BestTrial(rep *synthfmt.Report) int {
	if len(rep.Trials) == 0 {
		return -1
	}
	best := 0
	for i, t := range rep.Trials {
		if t.Achieved > rep.Trials[best].Achieved {
			best = i
		}
	}
	return best
}

// Summarize selects the best trial of rep (see BestTrial).
func Summarize(rep *synthfmt.Report) (*Summary, error) {
	i := BestTrial(rep)
	if i < 0 {
		return nil, pkgerrors.Wrap(ErrEmptyReport, rep.Name)
	}
	best := rep.Trials[i]
	s := &Summary{
		QueueSize: rep.QueueSize,
		Target:    best.Target,
		Achieved:  best.Achieved,
		Values:    make(map[synthfmt.Metric]float64, len(best.Values)),
	}
	for m, v := range best.Values {
		s.Values[m] = v
	}
	return s, nil
}
