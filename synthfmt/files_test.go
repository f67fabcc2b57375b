// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"
)

func TestQueueSizeFromName(t *testing.T) {
	for _, test := range []struct {
		name string
		want int
		err  bool
	}{
		{"vivado_analysis_on_queue_size_64.txt", 64, false},
		{"/a/b/vivado_analysis_on_queue_size_65535.txt", 65535, false},
		{"queue_size_12_run_3.txt", 12, false},
		{"run_128.txt", 128, false},
		{"run_128", 128, false},
		{"vivado_analysis_on_tree_depth_4.txt", 15, false},
		{"vivado_analysis_on_tree_depth_1.txt", 1, false},
		{"vivado_analysis_on_tree_depth_0.txt", 0, false},
		{"vivado_analysis_on_tree_depth_63.txt", 0, true},
		{"summary.txt", 0, true},
		{"run_x.txt", 0, true},
	} {
		got, err := QueueSizeFromName(test.name)
		if test.err {
			if err == nil {
				t.Errorf("QueueSizeFromName(%q) = %d, want error", test.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("QueueSizeFromName(%q): %v", test.name, err)
		} else if got != test.want {
			t.Errorf("QueueSizeFromName(%q) = %d, want %d", test.name, got, test.want)
		}
	}
}

func TestIsLogFile(t *testing.T) {
	for name, want := range map[string]bool{
		"vivado_analysis_on_queue_size_8.txt": true,
		"vivado_analysis_on_tree_depth_3.txt": true,
		"vivado_analysis_on_queue_size_8.log": false,
		"build.log":                           false,
		"README.txt":                          false,
	} {
		if got := IsLogFile(name); got != want {
			t.Errorf("IsLogFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReadDir(t *testing.T) {
	reps, err := ReadDir(filepath.Join("testdata", "results", "bram_tree", "vivado_analysis_results_xcau25p"))
	if err != nil {
		t.Fatal(err)
	}
	var sizes []int
	for _, r := range reps {
		sizes = append(sizes, r.QueueSize)
	}
	if want := []int{1023, 65535}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("queue sizes = %v, want %v", sizes, want)
	}
}

func TestReadDirMissing(t *testing.T) {
	if _, err := ReadDir(filepath.Join("testdata", "nope")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want not-exist error, got %v", err)
	}
}

func TestReadVariants(t *testing.T) {
	dir := filepath.Join("testdata", "results", "register_tree", "vivado_analysis_results_xcau25p")
	vs, err := ReadVariants(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := vs[NoVariant]; ok {
		t.Errorf("unexpected NoVariant reports")
	}
	for _, v := range []Variant{EnqueueDisabled, EnqueueEnabled} {
		if len(vs[v]) != 1 || vs[v][0].QueueSize != 7 {
			t.Errorf("variant %q: want one report of queue size 7, got %+v", v.Suffix(), vs[v])
		}
	}
}

func TestLayoutGroups(t *testing.T) {
	type group struct {
		name  string
		sizes []int
	}
	collect := func(gs []Group) []group {
		var out []group
		for _, g := range gs {
			var sizes []int
			for _, r := range g.Reports {
				sizes = append(sizes, r.QueueSize)
			}
			out = append(out, group{g.Name, sizes})
		}
		return out
	}

	l := &Layout{Base: filepath.Join("testdata", "results"), Device: "xcau25p"}
	gs, err := l.Groups()
	if err != nil {
		t.Fatal(err)
	}
	want := []group{
		{"bram_tree", []int{1023, 65535}},
		{"register_tree_enq_disabled", []int{7}},
		{"register_tree_enq_enabled", []int{7}},
		{"systolic_array_cycled", []int{16}},
	}
	if got := collect(gs); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %+v, want %+v", got, want)
	}

	l.Device = "xcvu19p"
	gs, err = l.Groups()
	if err != nil {
		t.Fatal(err)
	}
	want = []group{{"register_tree", []int{15}}}
	if got := collect(gs); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() with xcvu19p = %+v, want %+v", got, want)
	}
}

func TestResultGroups(t *testing.T) {
	gs, err := ResultGroups("Register_Tree", filepath.Join("testdata", "results", "register_tree", "vivado_analysis_results_xcau25p"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, g := range gs {
		names = append(names, g.Name)
	}
	if want := []string{"register_tree_enq_disabled", "register_tree_enq_enabled"}; !reflect.DeepEqual(names, want) {
		t.Errorf("ResultGroups = %v, want %v", names, want)
	}

	gs, err = ResultGroups("systolic_array", filepath.Join("testdata", "results", "systolic_array", "vivado_analysis_results_cycled_xcau25p"))
	if err != nil {
		t.Fatal(err)
	}
	if len(gs) != 1 || gs[0].Name != "systolic_array_cycled" {
		t.Errorf("ResultGroups = %+v, want one systolic_array_cycled group", gs)
	}
}
