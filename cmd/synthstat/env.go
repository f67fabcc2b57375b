// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/internal/config"
	"github.com/hwpq/synthperf/storage/db"
	_ "github.com/hwpq/synthperf/storage/db/sqlite3"
	"github.com/hwpq/synthperf/synthchart"
	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// env is what every command runs with.
type env struct {
	w       io.Writer
	cfg     *config.Config
	factors synthseries.Factors
	styles  synthchart.Styles
}

func newEnv(w io.Writer, cfg *config.Config) (*env, error) {
	f, err := cfg.PerformanceFactors()
	if err != nil {
		return nil, err
	}
	st, err := cfg.ArchStyles()
	if err != nil {
		return nil, err
	}
	return &env{w: w, cfg: cfg, factors: f, styles: st}, nil
}

// outputFlags are the chart output flags shared by several commands.
type outputFlags struct {
	out     *string
	charts  *bool
	formats *[]string
}

func (o *outputFlags) register(cmd *kingpin.CmdClause) {
	o.out = cmd.Flag("out", "output directory (default from config)").PlaceHolder("DIR").String()
	o.charts = cmd.Flag("charts", "draw charts into the output directory").Bool()
	o.formats = cmd.Flag("format", "chart format: png, svg or pdf (repeatable; default from config)").PlaceHolder("FORMAT").Enums(synthchart.Formats...)
}

func (o *outputFlags) dir(e *env) string {
	if *o.out != "" {
		return *o.out
	}
	return e.cfg.OutputDir
}

// saveCharts writes each chart in every configured format.
func (o *outputFlags) saveCharts(e *env, charts []synthchart.Chart) error {
	formats := *o.formats
	if len(formats) == 0 {
		formats = e.cfg.Formats
	}
	for _, c := range charts {
		for _, f := range formats {
			file, err := synthchart.Save(c.Plot, o.dir(e), c.Name, f)
			if err != nil {
				return err
			}
			logrus.WithField("file", file).Info("wrote chart")
		}
	}
	return nil
}

// buildSeries summarizes a group, leaving out reports that have no
// trials.
func buildSeries(g synthfmt.Group) (*synthseries.Series, error) {
	s := synthseries.NewSeries(g.Name)
	for _, rep := range g.Reports {
		sum, err := synthseries.Summarize(rep)
		if errors.Is(err, synthseries.ErrEmptyReport) {
			logrus.WithField("file", rep.Name).Warn("no achieved frequency found, skipping")
			continue
		} else if err != nil {
			return nil, err
		}
		s.Add(sum)
	}
	if s.Len() == 0 {
		return nil, pkgerrors.Wrap(synthseries.ErrEmptyReport, g.Name)
	}
	return s, nil
}

// openDB opens a database given as driver:dsn, e.g.
// sqlite3:results.db.
func openDB(spec string) (*db.DB, error) {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok || driver == "" {
		return nil, pkgerrors.Errorf("database %q is not of the form driver:dsn", spec)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "opening %s database", driver)
	}
	return d, nil
}
