// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/internal/texttab"
	"github.com/hwpq/synthperf/synthchart"
	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// reportCmd prints every trial of individual synthesis logs.
type reportCmd struct {
	cmd   *kingpin.CmdClause
	files *[]string
	tail  *int
	out   outputFlags
}

func (c *reportCmd) register(app *kingpin.Application) {
	c.cmd = app.Command("report", "Print the trials of synthesis logs.")
	c.tail = c.cmd.Flag("tail", "average the last N trials (default from config)").PlaceHolder("N").Int()
	c.out.register(c.cmd)
	c.files = c.cmd.Arg("file", "synthesis log").Required().ExistingFiles()
}

func (c *reportCmd) run(e *env) error {
	tail := *c.tail
	if tail <= 0 {
		tail = e.cfg.Tail
	}
	for i, file := range *c.files {
		rep, err := synthfmt.ParseFile(file)
		if err != nil {
			return err
		}
		if qs, err := synthfmt.QueueSizeFromName(filepath.Base(file)); err == nil {
			rep.QueueSize = qs
		} else {
			logrus.WithField("file", file).Debug(err)
		}

		if i > 0 {
			fmt.Fprintln(e.w)
		}
		if err := writeReport(e, rep, tail); err != nil {
			return err
		}

		if *c.out.charts {
			pl, err := synthchart.TrialChart(rep, e.styles.Lookup(archOf(file)))
			if err != nil {
				logrus.WithField("file", file).Warn(err)
				continue
			}
			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + "_trials"
			if err := c.out.saveCharts(e, []synthchart.Chart{{Name: name, Plot: pl}}); err != nil {
				return err
			}
		}
	}
	return nil
}

// archOf guesses the architecture of a log from the directory layout
// results/<arch>/vivado_analysis_results_<device>/<log>.
func archOf(file string) string {
	dir := filepath.Dir(file)
	if b := filepath.Base(dir); strings.HasPrefix(b, "enqueue_") {
		dir = filepath.Dir(dir)
	}
	return filepath.Base(filepath.Dir(dir))
}

func writeReport(e *env, rep *synthfmt.Report, tail int) error {
	title := rep.Name
	if rep.QueueSize > 0 {
		title += fmt.Sprintf(" (queue size %d)", rep.QueueSize)
	}
	if err := writeTitle(e.w, title); err != nil {
		return err
	}
	if len(rep.Trials) == 0 {
		_, err := fmt.Fprintln(e.w, "no trials")
		return err
	}

	best := synthseries.BestTrial(rep)

	metrics := synthfmt.Metrics()
	var t texttab.Table
	t.Row().Cells("", "target")
	for _, m := range metrics {
		t.Cell(m.String())
	}
	t.Rule('-')
	for i := 1; i < len(metrics)+2; i++ {
		t.SetAlign(i, texttab.Right)
	}
	for i, tr := range rep.Trials {
		mark := ""
		if i == best {
			mark = "*"
		}
		t.Row().Cell(mark).Cellf("%g", tr.Target)
		for _, m := range metrics {
			if v, ok := tr.Value(m); ok {
				t.Cell(formatValue(m, v))
			} else {
				t.Cell("-")
			}
		}
	}
	if err := t.Format(e.w); err != nil {
		return err
	}

	st := synthseries.TrialStats(rep, tail)
	var s texttab.Table
	s.SetAlign(1, texttab.Right)
	s.Row().Cells("trials", strconv.Itoa(st.N))
	s.Row().Cells("min", formatMHz(st.Min))
	s.Row().Cells("median", formatMHz(st.Median))
	s.Row().Cells("mean", formatMHz(st.Mean))
	s.Row().Cells("max", formatMHz(st.Max))
	s.Row().Cells("stddev", formatMHz(st.StdDev))
	s.Row().Cells(fmt.Sprintf("mean of last %d", st.TailN), formatMHz(st.TailMean))
	s.Row().Cells("targets met", fmt.Sprintf("%d/%d", st.TargetMet, st.N))
	s.Row().Cells("best target", fmt.Sprintf("%g MHz", st.BestTarget))
	if !math.IsNaN(st.FirstMissedTarget) {
		s.Row().Cells("first missed target", fmt.Sprintf("%g MHz", st.FirstMissedTarget))
	}
	fmt.Fprintln(e.w)
	return s.Format(e.w)
}

func formatMHz(v float64) string {
	return fmt.Sprintf("%.3f MHz", v)
}
