// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/synthseries"
)

// showCmd prints a run saved by compare --db.
type showCmd struct {
	cmd    *kingpin.CmdClause
	dbSpec *string
	runID  *int64
	tables *bool
}

func (c *showCmd) register(app *kingpin.Application) {
	c.cmd = app.Command("show", "Print the series saved in a database run.")
	c.dbSpec = c.cmd.Flag("db", "database DRIVER:DSN").PlaceHolder("DRIVER:DSN").Required().String()
	c.tables = c.cmd.Flag("compare", "also print the comparison tables").Bool()
	c.runID = c.cmd.Arg("run", "run ID (default: the latest run)").Int64()
}

func (c *showCmd) run(e *env) error {
	ctx := context.Background()
	d, err := openDB(*c.dbSpec)
	if err != nil {
		return err
	}
	defer d.Close()

	runID := *c.runID
	if runID == 0 {
		if runID, err = d.LastRun(ctx); err != nil {
			return err
		}
	}
	archs, err := d.Archs(ctx, runID)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"run": runID, "archs": len(archs)}).Debug("loading run")

	var all []*synthseries.Series
	for i, arch := range archs {
		s, err := d.LoadSeries(ctx, runID, arch)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(e.w)
		}
		if err := writeSeries(e.w, s); err != nil {
			return err
		}
		all = append(all, s)
	}
	if len(all) == 0 {
		_, err := fmt.Fprintf(e.w, "run %d is empty\n", runID)
		return err
	}
	if *c.tables {
		fmt.Fprintln(e.w)
		return writeComparison(e, all)
	}
	return nil
}

// saveRun saves all as a new run in the database dbSpec and returns
// the run ID.
func saveRun(ctx context.Context, dbSpec string, all []*synthseries.Series) (int64, error) {
	d, err := openDB(dbSpec)
	if err != nil {
		return 0, err
	}
	defer d.Close()

	r, err := d.NewRun(ctx)
	if err != nil {
		return 0, err
	}
	for _, s := range all {
		if err := r.InsertSeries(ctx, s); err != nil {
			return 0, err
		}
	}
	logrus.WithFields(logrus.Fields{"run": r.ID, "series": len(all)}).Info("saved run")
	return r.ID, nil
}
