// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/synthchart"
	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// seriesCmd summarizes one result directory.
type seriesCmd struct {
	cmd  *kingpin.CmdClause
	dir  *string
	arch *string
	csv  *bool
	out  outputFlags
}

func (c *seriesCmd) register(app *kingpin.Application) {
	c.cmd = app.Command("series", "Print the best trial at each queue size of a result directory.")
	c.arch = c.cmd.Flag("arch", "architecture name (default: the parent directory's name)").PlaceHolder("NAME").String()
	c.csv = c.cmd.Flag("csv", "write CSV instead of a table").Bool()
	c.out.register(c.cmd)
	c.dir = c.cmd.Arg("dir", "result directory").Required().ExistingDir()
}

func (c *seriesCmd) run(e *env) error {
	arch := *c.arch
	if arch == "" {
		abs, err := filepath.Abs(*c.dir)
		if err != nil {
			return err
		}
		arch = filepath.Base(filepath.Dir(abs))
	}
	groups, err := synthfmt.ResultGroups(arch, *c.dir)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		return errors.Errorf("%s: no synthesis reports", *c.dir)
	}

	for i, g := range groups {
		s, err := buildSeries(g)
		if err != nil {
			return err
		}
		if *c.csv {
			if err := synthseries.WriteCSV(e.w, s); err != nil {
				return err
			}
		} else {
			if i > 0 {
				fmt.Fprintln(e.w)
			}
			if err := writeSeries(e.w, s); err != nil {
				return err
			}
		}
		if *c.out.charts {
			charts, err := synthchart.SummaryCharts(s, e.factors, e.styles)
			if err != nil {
				return err
			}
			if err := c.out.saveCharts(e, charts); err != nil {
				return err
			}
		}
	}
	return nil
}
