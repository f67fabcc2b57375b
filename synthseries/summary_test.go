// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hwpq/synthperf/synthfmt"
)

func report(t *testing.T, qs int, log string) *synthfmt.Report {
	t.Helper()
	rep, err := synthfmt.ReadReport(strings.NewReader(log), "test")
	if err != nil {
		t.Fatal(err)
	}
	rep.QueueSize = qs
	return rep
}

func TestSummarizeMax(t *testing.T) {
	rep := report(t, 8, `Frequency: 100 MHz -> Achieved Frequency: 90.1 MHz
Frequency: 150 MHz -> Achieved Frequency: 140.2 MHz
Frequency: 200 MHz -> Achieved Frequency: 130.0 MHz
`)
	sum, err := Summarize(rep)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Target != 150 || sum.Achieved != 140.2 || sum.QueueSize != 8 {
		t.Errorf("Summarize picked %+v, want target 150 achieved 140.2 queue size 8", sum)
	}
}

func TestSummarizeJoin(t *testing.T) {
	rep := report(t, 65535, `Frequency: 450 MHz -> CLB LUTs Used: 348
Frequency: 400 MHz -> Achieved Frequency: 299.401 MHz
Frequency: 400 MHz -> CLB LUTs Used: 347
Frequency: 450 MHz -> Achieved Frequency: 305.696 MHz
Frequency: 450.0 MHz -> CLB LUTs Util%: 0.25 %
`)
	sum, err := Summarize(rep)
	if err != nil {
		t.Fatal(err)
	}
	want := &Summary{
		QueueSize: 65535,
		Target:    450,
		Achieved:  305.696,
		Values: map[synthfmt.Metric]float64{
			synthfmt.LUTsUsed: 348,
			synthfmt.LUTsUtil: 0.25,
		},
	}
	if diff := cmp.Diff(want, sum); diff != "" {
		t.Errorf("Summarize (-want +got):\n%s", diff)
	}
}

func TestSummarizeTie(t *testing.T) {
	rep := report(t, 4, `Frequency: 100 MHz -> Achieved Frequency: 120 MHz
Frequency: 100 MHz -> Power: 1 W
Frequency: 200 MHz -> Achieved Frequency: 120 MHz
Frequency: 200 MHz -> Power: 2 W
`)
	sum, err := Summarize(rep)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Target != 100 || sum.Values[synthfmt.Power] != 1 {
		t.Errorf("tie should go to the first trial, got %+v", sum)
	}
}

func TestBestTrial(t *testing.T) {
	for _, tt := range []struct {
		achieved []float64
		want     int
	}{
		{nil, -1},
		{[]float64{90.1}, 0},
		{[]float64{90.1, 140.2, 130.0}, 1},
		{[]float64{120, 110, 120}, 0},
		{[]float64{120, 130, 130}, 1},
	} {
		rep := &synthfmt.Report{Name: "r"}
		for i, a := range tt.achieved {
			rep.Trials = append(rep.Trials, &synthfmt.Trial{Target: float64(100 * (i + 1)), Achieved: a})
		}
		if got := BestTrial(rep); got != tt.want {
			t.Errorf("BestTrial(%v) = %d, want %d", tt.achieved, got, tt.want)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	rep := report(t, 4, "no trials here\n")
	_, err := Summarize(rep)
	if !errors.Is(err, ErrEmptyReport) {
		t.Errorf("want ErrEmptyReport, got %v", err)
	}
}

func TestSummarizeMalformedLine(t *testing.T) {
	rep := report(t, 4, `Frequency: abc MHz -> Achieved Frequency: 900 MHz
Frequency: 100 MHz -> Achieved Frequency: 90 MHz
`)
	if len(rep.Trials) != 1 {
		t.Fatalf("want 1 trial, got %d", len(rep.Trials))
	}
	sum, err := Summarize(rep)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Achieved != 90 {
		t.Errorf("malformed line leaked into summary: %+v", sum)
	}
}

func TestSummaryIsACopy(t *testing.T) {
	rep := report(t, 2, "Frequency: 1 MHz -> Achieved Frequency: 2 MHz\nFrequency: 1 MHz -> Power: 3 W\n")
	sum, err := Summarize(rep)
	if err != nil {
		t.Fatal(err)
	}
	sum.Values[synthfmt.Power] = 99
	if rep.Trials[0].Values[synthfmt.Power] != 3 {
		t.Errorf("modifying a Summary changed its Report")
	}
}

func TestBuildSeries(t *testing.T) {
	r1 := report(t, 16, "Frequency: 100 MHz -> Achieved Frequency: 200 MHz\n")
	r2 := report(t, 4, "Frequency: 100 MHz -> Achieved Frequency: 250 MHz\n")
	r3 := report(t, 16, "Frequency: 100 MHz -> Achieved Frequency: 180 MHz\n")
	s, err := BuildSeries("bram_tree", []*synthfmt.Report{r1, r2, r3})
	if err != nil {
		t.Fatal(err)
	}
	if s.Arch != "bram_tree" || s.Len() != 2 {
		t.Fatalf("got %s with %d entries", s.Arch, s.Len())
	}
	// Duplicate queue sizes: the last report wins.
	if got := s.Summaries[16].Achieved; got != 180 {
		t.Errorf("queue size 16 achieved = %v, want 180", got)
	}
	if diff := cmp.Diff([]int{4, 16}, s.QueueSizes()); diff != "" {
		t.Errorf("QueueSizes (-want +got):\n%s", diff)
	}

	empty := report(t, 32, "")
	if _, err := BuildSeries("bram_tree", []*synthfmt.Report{r1, empty}); !errors.Is(err, ErrEmptyReport) {
		t.Errorf("want ErrEmptyReport, got %v", err)
	}
}

func TestMetricSeries(t *testing.T) {
	s := NewSeries("systolic_array")
	s.Add(&Summary{QueueSize: 64, Achieved: 200, Values: map[synthfmt.Metric]float64{synthfmt.LUTsUsed: 900}})
	s.Add(&Summary{QueueSize: 8, Achieved: 300, Values: map[synthfmt.Metric]float64{synthfmt.LUTsUsed: 100}})
	s.Add(&Summary{QueueSize: 16, Achieved: 250, Values: map[synthfmt.Metric]float64{}})

	got := MetricSeries(s, synthfmt.LUTsUsed)
	want := []Point{{8, 100}, {64, 900}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LUTsUsed series (-want +got):\n%s", diff)
	}

	got = MetricSeries(s, synthfmt.AchievedFrequency)
	want = []Point{{8, 300}, {16, 250}, {64, 200}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AchievedFrequency series (-want +got):\n%s", diff)
	}
}
