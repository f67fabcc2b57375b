// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Log file naming. A result directory holds one report per queue
// size, e.g. vivado_analysis_on_queue_size_64.txt, or, for tree
// designs, one per tree depth, e.g. vivado_analysis_on_tree_depth_6.txt.
const (
	queueSizePrefix = "vivado_analysis_on_queue_size"
	treeDepthPrefix = "vivado_analysis_on_tree_depth"
	resultsDirMark  = "vivado_analysis_results"
)

var (
	queueSizeRE = regexp.MustCompile(`queue_size_(\d+)`)
	trailingRE  = regexp.MustCompile(`_(\d+)(?:\.[^._]*)?$`)
)

// maxTreeDepth keeps 2^depth-1 within an int.
const maxTreeDepth = 62

// QueueSizeFromName derives the queue size a report was produced for
// from its file name.
//
// A "queue_size_<N>" token gives N directly. Otherwise the trailing
// "_<N>" before the extension is used, and if the name mentions
// "tree_depth" it is taken as a tree depth d and converted to the
// queue size 2^d - 1.
func QueueSizeFromName(name string) (int, error) {
	base := filepath.Base(name)
	if m := queueSizeRE.FindStringSubmatch(base); m != nil {
		return strconv.Atoi(m[1])
	}
	m := trailingRE.FindStringSubmatch(base)
	if m == nil {
		return 0, errors.Errorf("%s: no queue size in file name", base)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrapf(err, "%s: bad queue size", base)
	}
	if strings.Contains(base, "tree_depth") {
		if n > maxTreeDepth {
			return 0, errors.Errorf("%s: tree depth %d too large", base, n)
		}
		return 1<<uint(n) - 1, nil
	}
	return n, nil
}

// IsLogFile reports whether name follows the synthesis report naming
// convention.
func IsLogFile(name string) bool {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ".txt") {
		return false
	}
	return strings.Contains(base, queueSizePrefix) || strings.Contains(base, treeDepthPrefix)
}

// ReadDir parses every synthesis report directly inside dir, in name
// order, and sets each Report's QueueSize from its file name.
func ReadDir(dir string) ([]*Report, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading report directory")
	}
	var reps []*Report
	for _, ent := range ents {
		if ent.IsDir() || !IsLogFile(ent.Name()) {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		qs, err := QueueSizeFromName(ent.Name())
		if err != nil {
			return nil, err
		}
		rep, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		rep.QueueSize = qs
		reps = append(reps, rep)
	}
	return reps, nil
}

// A Variant distinguishes builds of an architecture with the enqueue
// operation enabled or disabled.
type Variant int

const (
	NoVariant Variant = iota
	EnqueueDisabled
	EnqueueEnabled
)

// Suffix returns the suffix appended to an architecture name for v.
func (v Variant) Suffix() string {
	switch v {
	case EnqueueDisabled:
		return "_enq_disabled"
	case EnqueueEnabled:
		return "_enq_enabled"
	}
	return ""
}

var variantDirs = map[Variant]string{
	EnqueueDisabled: "enqueue_0",
	EnqueueEnabled:  "enqueue_1",
}

// ReadVariants reads the reports of one result directory. If dir has
// both an enqueue_0 and an enqueue_1 subdirectory, the reports of each
// are returned under EnqueueDisabled and EnqueueEnabled. Otherwise the
// reports directly inside dir are returned under NoVariant.
func ReadVariants(dir string) (map[Variant][]*Report, error) {
	split := true
	for _, sub := range variantDirs {
		fi, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !fi.IsDir() {
			split = false
			break
		}
	}
	out := make(map[Variant][]*Report)
	if !split {
		reps, err := ReadDir(dir)
		if err != nil {
			return nil, err
		}
		out[NoVariant] = reps
		return out, nil
	}
	for v, sub := range variantDirs {
		reps, err := ReadDir(filepath.Join(dir, sub))
		if err != nil {
			return nil, err
		}
		out[v] = reps
	}
	return out, nil
}

// A Group is the set of reports for one architecture variant.
type Group struct {
	Name    string
	Reports []*Report
}

// ResultGroups reads one result directory of architecture arch and
// returns its groups: one, or two if the directory is split by
// enqueue variant. A directory without reports yields no groups.
func ResultGroups(arch, dir string) ([]Group, error) {
	variants, err := ReadVariants(dir)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(arch)
	if strings.Contains(strings.ToLower(filepath.Base(dir)), "cycled") {
		name += "_cycled"
	}
	if reps, ok := variants[NoVariant]; ok {
		if len(reps) == 0 {
			logrus.WithField("dir", dir).Warn("no synthesis reports found")
			return nil, nil
		}
		return []Group{{name, reps}}, nil
	}
	dis, en := variants[EnqueueDisabled], variants[EnqueueEnabled]
	if len(dis) == 0 || len(en) == 0 {
		logrus.WithField("dir", dir).Warn("no synthesis reports found")
		return nil, nil
	}
	return []Group{
		{name + EnqueueDisabled.Suffix(), dis},
		{name + EnqueueEnabled.Suffix(), en},
	}, nil
}

// A Layout describes a tree of synthesis results: one directory per
// architecture, each holding result directories whose names contain
// "vivado_analysis_results".
type Layout struct {
	// Base is the root directory.
	Base string

	// Device, if non-empty, restricts result directories to those
	// whose name contains it, e.g. "xcau25p".
	Device string
}

// Groups reads every result directory under l.Base and returns one
// Group per architecture variant, sorted by name.
//
// Architectures with enqueue variants produce two groups named
// "<arch>_enq_disabled" and "<arch>_enq_enabled"; result directories
// whose name contains "cycled" add "_cycled" after the architecture.
// Result directories without reports are skipped. If two result
// directories produce the same group name, the later one wins.
func (l *Layout) Groups() ([]Group, error) {
	archs, err := os.ReadDir(l.Base)
	if err != nil {
		return nil, errors.Wrap(err, "reading results base directory")
	}
	byName := make(map[string][]*Report)
	for _, arch := range archs {
		if !arch.IsDir() {
			continue
		}
		archPath := filepath.Join(l.Base, arch.Name())
		results, err := os.ReadDir(archPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading architecture directory")
		}
		for _, res := range results {
			if !res.IsDir() || !strings.Contains(res.Name(), resultsDirMark) {
				continue
			}
			if l.Device != "" && !strings.Contains(res.Name(), l.Device) {
				continue
			}
			gs, err := ResultGroups(arch.Name(), filepath.Join(archPath, res.Name()))
			if err != nil {
				return nil, err
			}
			for _, g := range gs {
				byName[g.Name] = g.Reports
			}
		}
	}

	groups := make([]Group, 0, len(byName))
	for name, reps := range byName {
		groups = append(groups, Group{name, reps})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}
