// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import "testing"

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics() {
		got, ok := ParseMetric(m.String())
		if !ok || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v; want %v, true", m.String(), got, ok, m)
		}
	}
	if _, ok := ParseMetric("LUTs"); ok {
		t.Errorf("ParseMetric(%q) succeeded", "LUTs")
	}
}

func TestMetricKinds(t *testing.T) {
	for _, tt := range []struct {
		m       Metric
		integer bool
		util    bool
		unit    string
	}{
		{AchievedFrequency, false, false, "MHz"},
		{LUTsUsed, true, false, ""},
		{RegistersUtil, false, true, "%"},
		{BRAMUsed, false, false, ""},
		{BRAMUtil, false, true, "%"},
	} {
		if got := tt.m.Integer(); got != tt.integer {
			t.Errorf("%v.Integer() = %v", tt.m, got)
		}
		if got := tt.m.IsUtilization(); got != tt.util {
			t.Errorf("%v.IsUtilization() = %v", tt.m, got)
		}
		if got := tt.m.Unit(); got != tt.unit {
			t.Errorf("%v.Unit() = %q, want %q", tt.m, got, tt.unit)
		}
	}
	if s := Metric(99).String(); s != "Metric(99)" {
		t.Errorf("Metric(99).String() = %q", s)
	}
}
