// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthfmt reads the text reports written by FPGA synthesis
// and implementation runs.
//
// A report holds one trial per target clock frequency. Each trial is
// announced by a line of the form
//
//	Frequency: 450 MHz -> Achieved Frequency: 305.696 MHz
//
// and may be accompanied, anywhere else in the same file, by lines
// that report a single measurement for that same target frequency:
//
//	Frequency: 450 MHz -> Power: 0.548 W
//	Frequency: 450 MHz -> CLB LUTs Used: 348
//	Frequency: 450 MHz -> CLB LUTs Util%: 0.25 %
//	Frequency: 450 MHz -> CLB Registers Used: 204
//	Frequency: 450 MHz -> CLB Registers Util%: 0.07 %
//	Frequency: 450 MHz -> BRAM Util: 30
//	Frequency: 450 MHz -> BRAM Util%: 10.00 %
//
// Measurements are joined to trials by target frequency, never by
// position. Lines that look like measurements but cannot be parsed are
// reported as *SyntaxError records and are otherwise ignored, since
// synthesis logs routinely contain partial trial blocks.
//
// This package is designed to be used with the higher-level package
// synthseries.
package synthfmt

import "fmt"

// A Metric identifies one kind of measurement reported for a trial.
type Metric int

const (
	// AchievedFrequency is the post-implementation clock frequency in
	// MHz. Every trial has one.
	AchievedFrequency Metric = iota
	Power
	LUTsUsed
	LUTsUtil
	RegistersUsed
	RegistersUtil
	// BRAMUsed is a raw block count even though the log labels it
	// "BRAM Util".
	BRAMUsed
	BRAMUtil

	numMetrics
)

type metricInfo struct {
	name    string
	unit    string
	label   string // label as printed in the log
	integer bool
}

var metricInfos = [numMetrics]metricInfo{
	AchievedFrequency: {"achieved_frequency_mhz", "MHz", "Achieved Frequency", false},
	Power:             {"power_w", "W", "Power", false},
	LUTsUsed:          {"luts_used", "", "CLB LUTs Used", true},
	LUTsUtil:          {"luts_util_pct", "%", "CLB LUTs Util%", false},
	RegistersUsed:     {"registers_used", "", "CLB Registers Used", true},
	RegistersUtil:     {"registers_util_pct", "%", "CLB Registers Util%", false},
	BRAMUsed:          {"bram_used", "", "BRAM Util", false},
	BRAMUtil:          {"bram_util_pct", "%", "BRAM Util%", false},
}

// Metrics returns every known metric in declaration order.
func Metrics() []Metric {
	ms := make([]Metric, numMetrics)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m >= 0 && m < numMetrics
}

// String returns the snake_case name of m, e.g. "luts_used".
func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricInfos[m].name
}

// Unit returns the unit of m, or "" for plain counts.
func (m Metric) Unit() string {
	if !m.Valid() {
		return ""
	}
	return metricInfos[m].unit
}

// Label returns the label m carries in a synthesis log.
func (m Metric) Label() string {
	if !m.Valid() {
		return ""
	}
	return metricInfos[m].label
}

// Integer reports whether values of m are integer counts.
func (m Metric) Integer() bool {
	return m.Valid() && metricInfos[m].integer
}

// IsUtilization reports whether m is a utilization percentage.
func (m Metric) IsUtilization() bool {
	return m == LUTsUtil || m == RegistersUtil || m == BRAMUtil
}

// ParseMetric returns the Metric whose String is name.
func ParseMetric(name string) (Metric, bool) {
	for i, info := range metricInfos {
		if info.name == name {
			return Metric(i), true
		}
	}
	return 0, false
}
