// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hwpq/synthperf/synthfmt"
)

func TestWriteCSV(t *testing.T) {
	s := NewSeries("bram_tree")
	s.Add(&Summary{QueueSize: 1023, Target: 200, Achieved: 248.2, Values: map[synthfmt.Metric]float64{
		synthfmt.Power: 0.5,
	}})
	s.Add(&Summary{QueueSize: 65535, Target: 450, Achieved: 305.696, Values: map[synthfmt.Metric]float64{
		synthfmt.Power:         0.548,
		synthfmt.LUTsUsed:      348,
		synthfmt.LUTsUtil:      0.25,
		synthfmt.RegistersUsed: 204,
		synthfmt.RegistersUtil: 0.07,
		synthfmt.BRAMUsed:      30,
		synthfmt.BRAMUtil:      10,
	}})

	var buf strings.Builder
	if err := WriteCSV(&buf, s); err != nil {
		t.Fatal(err)
	}
	want := `arch,queue_size,target_frequency_mhz,achieved_frequency_mhz,power_w,luts_used,luts_util_pct,registers_used,registers_util_pct,bram_used,bram_util_pct
bram_tree,1023,200,248.2,0.5,,,,,,
bram_tree,65535,450,305.696,0.548,348,0.25,204,0.07,30,10
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteCSV (-want +got):\n%s", diff)
	}
}

func TestWritePointsCSV(t *testing.T) {
	series := map[string][]Point{
		"bram_tree":      {{7, 30}, {1023, 31.5}},
		"systolic_array": {{7, math.Inf(1)}, {16, 125}},
	}
	var buf strings.Builder
	if err := WritePointsCSV(&buf, []string{"systolic_array", "bram_tree"}, series); err != nil {
		t.Fatal(err)
	}
	want := `queue_size,systolic_array,bram_tree
7,inf,30
16,125,
1023,,31.5
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WritePointsCSV (-want +got):\n%s", diff)
	}
}
