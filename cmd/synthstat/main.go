// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Synthstat summarizes FPGA synthesis sweeps of priority queue
// architectures.
//
// Usage:
//
//	synthstat [--log level] [--config file] report [--tail n] [--out dir --charts] file...
//	synthstat [--log level] [--config file] series [--arch name] [--csv] [--out dir --charts] dir
//	synthstat [--log level] [--config file] compare [--device part] [--out dir] [--charts] [--csv] [--html]
//		[--db driver:dsn] [--gcs bucket [--gcs-prefix prefix] [--credentials file]] basedir
//	synthstat [--log level] show --db driver:dsn [run]
//
// Each synthesis log holds one line per measurement, tagged with the
// target clock frequency it was synthesized for:
//
//	Frequency: 450 MHz -> Achieved Frequency: 305.696 MHz
//	Frequency: 450 MHz -> CLB LUTs Used: 348
//	Frequency: 450 MHz -> BRAM Util%: 10.00 %
//
// The report command prints every trial of the given logs along with
// statistics of the achieved frequency.
//
// The series command reads one result directory, such as
// results/bram_tree/vivado_analysis_results_xcau25p, and prints the
// best trial at each queue size. The queue size of a log comes from
// its name: queue_size_N, a trailing _N, or tree_depth_D for a tree of
// 2^D-1 entries. A result directory with enqueue_0 and enqueue_1
// subdirectories yields separate enqueue-disabled and enqueue-enabled
// series.
//
// The compare command walks a base directory holding one directory
// per architecture and prints, for each queue operation, the
// estimated throughput and resource efficiency of every architecture
// next to each other, followed by the binding resource utilization.
// Results can also be written as charts, CSV and HTML, saved to a SQL
// database and uploaded to a Cloud Storage bucket.
//
// The show command prints the series saved by an earlier compare
// --db, by default the latest run.
//
// The log level can also be set with SYNTHSTAT_LOG and the
// configuration file with SYNTHSTAT_CONFIG.
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hwpq/synthperf/internal/config"
)

var exit = os.Exit // replaced during testing

func main() {
	if err := synthstat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		logrus.Error(err)
		exit(1)
	}
}

var logLevels = []string{"debug", "info", "warning", "error"}

func synthstat(w, wErr io.Writer, args []string) error {
	app := kingpin.New("synthstat", "Summarize FPGA synthesis sweeps of priority queue architectures.")
	app.Writer(wErr)
	app.Terminate(nil)
	app.HelpFlag.Short('h')

	logLevel := app.Flag("log", "log level: "+joinOr(logLevels)).PlaceHolder("LEVEL").Default("warning").Envar("SYNTHSTAT_LOG").Enum(logLevels...)
	configFile := app.Flag("config", "YAML configuration file").PlaceHolder("FILE").Envar("SYNTHSTAT_CONFIG").String()

	var r reportCmd
	r.register(app)
	var s seriesCmd
	s.register(app)
	var c compareCmd
	c.register(app)
	var sh showCmd
	sh.register(app)

	cmd, err := app.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing command line")
	}
	if cmd == "" {
		// --help was handled by kingpin.
		return nil
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	logrus.SetOutput(wErr)
	logrus.SetLevel(level)

	cfg := config.Default()
	if *configFile != "" {
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
		logrus.WithField("file", *configFile).Debug("loaded configuration")
	}
	env, err := newEnv(w, cfg)
	if err != nil {
		return err
	}

	switch cmd {
	case r.cmd.FullCommand():
		return r.run(env)
	case s.cmd.FullCommand():
		return s.run(env)
	case c.cmd.FullCommand():
		return c.run(env)
	case sh.cmd.FullCommand():
		return sh.run(env)
	}
	return errors.Errorf("unknown command %q", cmd)
}

func joinOr(xs []string) string {
	out := ""
	for i, x := range xs {
		switch {
		case i == 0:
		case i == len(xs)-1:
			out += " or "
		default:
			out += ", "
		}
		out += x
	}
	return out
}
