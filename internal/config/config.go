// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the synthstat configuration file.
//
// The file is YAML. Every key is optional; anything left out keeps
// its default. For example:
//
//	device: xcvu19p
//	output_dir: plots
//	performance_factors:
//	  dequeue:
//	    bram_tree: 0.125
//	architecture_styles:
//	  skew_heap:
//	    color: teal
//	    marker: s
//	    display_name: Skew Heap
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hwpq/synthperf/synthchart"
	"github.com/hwpq/synthperf/synthseries"
)

// StyleConfig is the YAML form of a synthchart.Style.
type StyleConfig struct {
	Color       string `yaml:"color"`
	Marker      string `yaml:"marker"`
	DisplayName string `yaml:"display_name"`
}

// Config holds everything synthstat can be told from a file.
type Config struct {
	// Device restricts result directories to one FPGA part.
	Device string `yaml:"device"`

	// OutputDir is where charts and tables go when no per-format
	// directory is given.
	OutputDir string `yaml:"output_dir"`

	// Tail is the number of trailing trials averaged in trial
	// statistics.
	Tail int `yaml:"tail"`

	// Formats lists the chart formats written to OutputDir.
	Formats []string `yaml:"formats"`

	// Factors overrides entries of the performance factor table,
	// keyed by operation and then architecture.
	Factors map[string]map[string]float64 `yaml:"performance_factors"`

	// Styles overrides or adds architecture styles. Fields left empty
	// in an override keep the built-in value.
	Styles map[string]StyleConfig `yaml:"architecture_styles"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Device:    "xcau25p",
		OutputDir: "vivado_analysis_results_plots",
		Tail:      synthseries.DefaultTail,
		Formats:   []string{"png"},
	}
}

// Load reads the file at path over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Tail < 0 {
		return errors.Errorf("tail must not be negative, got %d", c.Tail)
	}
	for _, f := range c.Formats {
		ok := false
		for _, g := range synthchart.Formats {
			ok = ok || f == g
		}
		if !ok {
			return errors.Errorf("unsupported chart format %q", f)
		}
	}
	for op, archs := range c.Factors {
		if _, err := synthseries.ParseOperation(op); err != nil {
			return errors.Wrap(err, "performance_factors")
		}
		for arch, v := range archs {
			if !(v > 0) {
				return errors.Errorf("performance_factors: %s/%s must be positive, got %v", op, arch, v)
			}
		}
	}
	return nil
}

// PerformanceFactors returns the built-in factor table with the
// configured overrides applied.
func (c *Config) PerformanceFactors() (synthseries.Factors, error) {
	f := synthseries.DefaultFactors().Clone()
	for name, archs := range c.Factors {
		op, err := synthseries.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		if f[op] == nil {
			f[op] = make(map[string]float64)
		}
		for arch, v := range archs {
			f[op][arch] = v
		}
	}
	return f, nil
}

// ArchStyles returns the built-in styles with the configured
// overrides applied. A new architecture needs both a color and a
// marker.
func (c *Config) ArchStyles() (synthchart.Styles, error) {
	st := synthchart.DefaultStyles()
	for arch, sc := range c.Styles {
		s, ok := st[arch]
		if !ok && (sc.Color == "" || sc.Marker == "") {
			return nil, errors.Errorf("architecture_styles: %s needs a color and a marker", arch)
		}
		if sc.Color != "" {
			clr, err := synthchart.ParseColor(sc.Color)
			if err != nil {
				return nil, errors.Wrapf(err, "architecture_styles: %s", arch)
			}
			s.Color = clr
		}
		if sc.Marker != "" {
			g, err := synthchart.ParseMarker(sc.Marker)
			if err != nil {
				return nil, errors.Wrapf(err, "architecture_styles: %s", arch)
			}
			s.Glyph = g
		}
		if sc.DisplayName != "" {
			s.DisplayName = sc.DisplayName
		} else if s.DisplayName == "" {
			s.DisplayName = arch
		}
		st[arch] = s
	}
	return st, nil
}
