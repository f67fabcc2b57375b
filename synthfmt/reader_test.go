// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
)

func parseAll(t *testing.T, data string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Measurement:
			m := *rec
			// Wipe position information for comparisons.
			m.fileName, m.line = "", 0
			out = append(out, &m)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected result type %T", rec)
		}
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func printRecord(w io.Writer, r Record) {
	switch r := r.(type) {
	case *Measurement:
		fmt.Fprintf(w, "%v @ %v MHz = %v\n", r.Metric, r.Target, r.Value)
	case *SyntaxError:
		fmt.Fprintf(w, "SyntaxError: %s\n", r)
	default:
		panic(fmt.Sprintf("unknown record type %T", r))
	}
}

func compareRecords(t *testing.T, got, want []Record) {
	t.Helper()
	var diff bytes.Buffer
	for i := 0; i < len(got) || i < len(want); i++ {
		if i >= len(got) {
			fmt.Fprintf(&diff, "[%d] got: none, want:\n", i)
			printRecord(&diff, want[i])
		} else if i >= len(want) {
			fmt.Fprintf(&diff, "[%d] want: none, got:\n", i)
			printRecord(&diff, got[i])
		} else if !reflect.DeepEqual(got[i], want[i]) {
			fmt.Fprintf(&diff, "[%d] got:\n", i)
			printRecord(&diff, got[i])
			fmt.Fprintf(&diff, "[%d] want:\n", i)
			printRecord(&diff, want[i])
		}
	}
	if diff.Len() != 0 {
		t.Error(diff.String())
	}
}

func m(metric Metric, target, value float64) *Measurement {
	return &Measurement{Metric: metric, Target: target, Value: value}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []Record
	}
	for _, test := range []testCase{
		{
			"achieved",
			"Frequency: 100 MHz -> Achieved Frequency: 90.1 MHz",
			[]Record{m(AchievedFrequency, 100, 90.1)},
		},
		{
			"every metric",
			`Frequency: 450.0 MHz -> Achieved Frequency: 305.696 MHz
Frequency: 450.0 MHz -> Power: 0.548 W
Frequency: 450.0 MHz -> CLB LUTs Used: 348
Frequency: 450.0 MHz -> CLB LUTs Util%: 0.25 %
Frequency: 450.0 MHz -> CLB Registers Used: 204
Frequency: 450.0 MHz -> CLB Registers Util%: 0.07 %
Frequency: 450.0 MHz -> BRAM Util: 30.0
Frequency: 450.0 MHz -> BRAM Util%: 10.00 %`,
			[]Record{
				m(AchievedFrequency, 450, 305.696),
				m(Power, 450, 0.548),
				m(LUTsUsed, 450, 348),
				m(LUTsUtil, 450, 0.25),
				m(RegistersUsed, 450, 204),
				m(RegistersUtil, 450, 0.07),
				m(BRAMUsed, 450, 30),
				m(BRAMUtil, 450, 10),
			},
		},
		{
			"surrounding noise",
			`****** Vivado v2023.2
INFO: [Synth 8-6157] synthesizing module 'top'
  Frequency: 150 MHz -> Achieved Frequency: 140.2 MHz
Clock Frequency is fine
`,
			[]Record{m(AchievedFrequency, 150, 140.2)},
		},
		{
			"no space before unit",
			"Frequency: 200MHz -> Achieved Frequency: 130.0MHz\nFrequency: 200MHz -> Power: 1.5W",
			[]Record{m(AchievedFrequency, 200, 130), m(Power, 200, 1.5)},
		},
		{
			"percent without sign",
			"Frequency: 100 MHz -> CLB LUTs Util%: 0.5",
			[]Record{m(LUTsUtil, 100, 0.5)},
		},
		{
			"malformed target",
			"Frequency: abc MHz -> Achieved Frequency: 90 MHz",
			[]Record{&SyntaxError{"test", 1, `parsing target frequency "abc"`}},
		},
		{
			"malformed achieved",
			"Frequency: 100 MHz -> Achieved Frequency: fast MHz",
			[]Record{&SyntaxError{"test", 1, `parsing Achieved Frequency "fast"`}},
		},
		{
			"non-integer count",
			"Frequency: 100 MHz -> CLB LUTs Used: 348.5",
			[]Record{&SyntaxError{"test", 1, `parsing CLB LUTs Used "348.5"`}},
		},
		{
			"trailing text after count",
			"Frequency: 100 MHz -> CLB Registers Used: 204 cells",
			[]Record{&SyntaxError{"test", 1, "missing CLB Registers Used"}},
		},
		{
			"missing value",
			"Frequency: 100 MHz -> Power: W",
			[]Record{&SyntaxError{"test", 1, "missing Power"}},
		},
		{
			"bram count is not bram percent",
			"Frequency: 100 MHz -> BRAM Util%: 4.5 %\nFrequency: 100 MHz -> BRAM Util: 12",
			[]Record{m(BRAMUtil, 100, 4.5), m(BRAMUsed, 100, 12)},
		},
		{
			"errors continue",
			"Frequency: x MHz -> Power: 1 W\nFrequency: 100 MHz -> Power: 2 W",
			[]Record{
				&SyntaxError{"test", 1, `parsing target frequency "x"`},
				m(Power, 100, 2),
			},
		},
		{
			"no markers",
			"Achieved: 100 MHz\nPower: 1 W\nFrequency is 100 MHz\n",
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			compareRecords(t, got, test.want)
		})
	}
}

func TestReaderPos(t *testing.T) {
	input := "header\n\nFrequency: 100 MHz -> Achieved Frequency: 90 MHz\n"
	r := NewReader(strings.NewReader(input), "run.txt")
	if !r.Scan() {
		t.Fatal("expected a record")
	}
	file, line := r.Result().Pos()
	if file != "run.txt" || line != 3 {
		t.Errorf("want run.txt:3, got %s:%d", file, line)
	}
	if r.Scan() {
		t.Errorf("unexpected record %+v", r.Result())
	}
}

func TestReaderReset(t *testing.T) {
	var r Reader
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("Result before Scan should be a *SyntaxError")
	}
	r.Reset(strings.NewReader("Frequency: 1 MHz -> Power: 2 W"), "")
	if !r.Scan() {
		t.Fatal("expected a record")
	}
	if file, _ := r.Result().Pos(); file != "<unknown>" {
		t.Errorf("want file <unknown>, got %s", file)
	}
}

func TestReaderFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{100, 150.5, 305.696, 0.1, 1234.000001, 99.99999} {
		line := fmt.Sprintf("Frequency: %v MHz -> Achieved Frequency: %v MHz", f, f/2)
		recs := parseAll(t, line)
		compareRecords(t, recs, []Record{m(AchievedFrequency, f, f/2)})
	}
}

func TestReaderLongLine(t *testing.T) {
	long := "Frequency: 100 MHz -> " + strings.Repeat("x", 2*maxLine)
	input := "Frequency: 100 MHz -> Power: 1 W\n" + long + "\r\nFrequency: 100 MHz -> Achieved Frequency: 90 MHz\r\n" + long
	got := parseAll(t, input)
	compareRecords(t, got, []Record{
		m(Power, 100, 1),
		&SyntaxError{"test", 2, fmt.Sprintf("line longer than %d bytes", maxLine)},
		m(AchievedFrequency, 100, 90),
		&SyntaxError{"test", 4, fmt.Sprintf("line longer than %d bytes", maxLine)},
	})

	// A line of exactly maxLine bytes is still read.
	line := "Frequency: 100 MHz -> Achieved Frequency: 90 MHz"
	line = strings.Repeat(" ", maxLine-len(line)) + line
	compareRecords(t, parseAll(t, line+"\n"), []Record{m(AchievedFrequency, 100, 90)})
}
