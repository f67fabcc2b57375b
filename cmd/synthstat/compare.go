// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/influx"
	"github.com/hwpq/synthperf/internal/publish"
	"github.com/hwpq/synthperf/synthchart"
	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// compareCmd compares every architecture under a results tree.
type compareCmd struct {
	cmd    *kingpin.CmdClause
	base   *string
	device *string
	csv    *bool
	html   *bool
	dbSpec *string
	out    outputFlags

	gcsBucket *string
	gcsPrefix *string
	gcsCreds  *string

	influxURL    *string
	influxToken  *string
	influxSecret *string
	influxOrg    *string
	influxBucket *string
}

func (c *compareCmd) register(app *kingpin.Application) {
	c.cmd = app.Command("compare", "Compare the throughput and efficiency of every architecture.")
	c.device = c.cmd.Flag("device", "only read result directories for FPGA part DEVICE (default from config)").PlaceHolder("DEVICE").String()
	c.csv = c.cmd.Flag("csv", "write CSV files into the output directory").Bool()
	c.html = c.cmd.Flag("html", "write analysis.html into the output directory").Bool()
	c.dbSpec = c.cmd.Flag("db", "save the series to the database DRIVER:DSN").PlaceHolder("DRIVER:DSN").String()
	c.out.register(c.cmd)
	c.gcsBucket = c.cmd.Flag("gcs", "upload the output directory to Cloud Storage BUCKET").PlaceHolder("BUCKET").String()
	c.gcsPrefix = c.cmd.Flag("gcs-prefix", "object name prefix for uploads").PlaceHolder("PREFIX").String()
	c.gcsCreds = c.cmd.Flag("credentials", "service account key FILE for uploads").PlaceHolder("FILE").ExistingFile()
	c.influxURL = c.cmd.Flag("influx", "write the summaries to the InfluxDB server at URL").PlaceHolder("URL").String()
	c.influxToken = c.cmd.Flag("influx-token", "InfluxDB API token").Envar("SYNTHSTAT_INFLUX_TOKEN").String()
	c.influxSecret = c.cmd.Flag("influx-token-secret", "read the InfluxDB API token from Secret Manager version NAME").PlaceHolder("NAME").Envar("SYNTHSTAT_INFLUX_TOKEN_SECRET").String()
	c.influxOrg = c.cmd.Flag("influx-org", "InfluxDB organization").Default("synthperf").String()
	c.influxBucket = c.cmd.Flag("influx-bucket", "InfluxDB bucket").Default("synthesis").String()
	c.base = c.cmd.Arg("basedir", "directory holding one directory per architecture").Required().ExistingDir()
}

func (c *compareCmd) run(e *env) error {
	ctx := context.Background()

	device := *c.device
	if device == "" {
		device = e.cfg.Device
	}
	l := synthfmt.Layout{Base: *c.base, Device: device}
	groups, err := l.Groups()
	if err != nil {
		return err
	}
	var all []*synthseries.Series
	for _, g := range groups {
		s, err := buildSeries(g)
		if errors.Is(err, synthseries.ErrEmptyReport) {
			logrus.WithField("arch", g.Name).Warn(err)
			continue
		} else if err != nil {
			return err
		}
		all = append(all, s)
	}
	if len(all) == 0 {
		return pkgerrors.Errorf("%s: no synthesis results for device %q", *c.base, device)
	}
	logrus.WithFields(logrus.Fields{"base": *c.base, "series": len(all)}).Info("read results")

	if err := writeComparison(e, all); err != nil {
		return err
	}

	out := c.out.dir(e)
	if *c.csv {
		if err := writeCSVFiles(e, out, all); err != nil {
			return err
		}
	}
	if *c.out.charts {
		charts, err := synthchart.ComparisonCharts(all, e.factors, e.styles)
		if err != nil {
			return err
		}
		if err := c.out.saveCharts(e, charts); err != nil {
			return err
		}
	}
	if *c.html {
		if err := writeHTMLFile(filepath.Join(out, "analysis.html"), e, device, all); err != nil {
			return err
		}
	}

	runID := int64(0)
	if *c.dbSpec != "" {
		if runID, err = saveRun(ctx, *c.dbSpec, all); err != nil {
			return err
		}
		fmt.Fprintf(e.w, "\nsaved run %d\n", runID)
	}

	if *c.influxURL != "" {
		token, err := influxToken(ctx, *c.influxToken, *c.influxSecret)
		if err != nil {
			return err
		}
		iw := influx.NewWriter(*c.influxURL, token, *c.influxOrg, *c.influxBucket)
		err = iw.WriteSeries(ctx, device, time.Now(), all)
		iw.Close()
		if err != nil {
			return err
		}
		logrus.WithField("bucket", *c.influxBucket).Info("wrote summaries to InfluxDB")
	}

	if *c.gcsBucket != "" {
		meta := map[string]string{"device": device}
		prefix := *c.gcsPrefix
		if runID != 0 {
			meta["run"] = strconv.FormatInt(runID, 10)
			prefix = path.Join(prefix, meta["run"])
		}
		fsys, closeFS, err := publish.NewGCS(ctx, *c.gcsBucket, *c.gcsCreds)
		if err != nil {
			return pkgerrors.Wrap(err, "connecting to Cloud Storage")
		}
		defer closeFS()
		n, err := publish.Dir(ctx, fsys, prefix, out, meta)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"bucket": *c.gcsBucket, "files": n}).Info("uploaded results")
	}
	return nil
}

// archNames returns the names of the series in all that support op.
// An empty op selects every series.
func archNames(all []*synthseries.Series, op synthseries.Operation) []string {
	var names []string
	for _, s := range all {
		if op == "" || synthseries.Supports(op, s.Arch) {
			names = append(names, s.Arch)
		}
	}
	return names
}

// derived computes fn for every series in all that supports op.
func derived(all []*synthseries.Series, op synthseries.Operation, fn func(*synthseries.Series) []synthseries.Point) map[string][]synthseries.Point {
	m := make(map[string][]synthseries.Point)
	for _, s := range all {
		if op == "" || synthseries.Supports(op, s.Arch) {
			m[s.Arch] = fn(s)
		}
	}
	return m
}

// comparisonTable is one table of the comparison.
type comparisonTable struct {
	Name   string
	Title  string
	Names  []string
	Series map[string][]synthseries.Point
}

func comparisonTables(e *env, all []*synthseries.Series) []comparisonTable {
	var tabs []comparisonTable
	for _, op := range synthseries.Operations {
		op := op
		tabs = append(tabs, comparisonTable{
			Name:  "performance_" + string(op),
			Title: fmt.Sprintf("%s performance (MOPS/s)", op),
			Names: archNames(all, op),
			Series: derived(all, op, func(s *synthseries.Series) []synthseries.Point {
				return synthseries.Performance(s, e.factors, op)
			}),
		})
	}
	for _, op := range synthseries.Operations {
		op := op
		tabs = append(tabs, comparisonTable{
			Name:  "efficiency_" + string(op),
			Title: fmt.Sprintf("%s efficiency (MOPS/s per %% of binding resource)", op),
			Names: archNames(all, op),
			Series: derived(all, op, func(s *synthseries.Series) []synthseries.Point {
				return synthseries.Efficiency(s, e.factors, op)
			}),
		})
	}
	tabs = append(tabs, comparisonTable{
		Name:   "resource_utilization",
		Title:  "binding resource utilization (%)",
		Names:  archNames(all, ""),
		Series: derived(all, "", synthseries.ResourceUtilization),
	})
	return tabs
}

func writeComparison(e *env, all []*synthseries.Series) error {
	printed := false
	for _, t := range comparisonTables(e, all) {
		if len(t.Names) == 0 {
			continue
		}
		if printed {
			fmt.Fprintln(e.w)
		}
		if err := writePoints(e.w, t.Title, t.Names, t.Series); err != nil {
			return err
		}
		printed = true
	}
	return nil
}

// writeCSVFiles writes the summary of each series as <arch>.csv and
// each comparison table as <table>.csv in dir.
func writeCSVFiles(e *env, dir string, all []*synthseries.Series) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	for _, s := range all {
		if err := writeFile(filepath.Join(dir, s.Arch+".csv"), func(w io.Writer) error {
			return synthseries.WriteCSV(w, s)
		}); err != nil {
			return err
		}
	}
	for _, t := range comparisonTables(e, all) {
		if len(t.Names) == 0 {
			continue
		}
		if err := writeFile(filepath.Join(dir, t.Name+".csv"), func(w io.Writer) error {
			return synthseries.WritePointsCSV(w, t.Names, t.Series)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes the output of fn to name. Nothing is written if fn
// fails.
func writeFile(name string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return pkgerrors.Wrapf(err, "formatting %s", name)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0666); err != nil {
		return err
	}
	logrus.WithField("file", name).Info("wrote file")
	return nil
}
