// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthseries

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// An Operation is a priority-queue operation whose throughput is
// estimated from the achieved clock frequency.
type Operation string

const (
	Enqueue Operation = "enqueue"
	Dequeue Operation = "dequeue"
	Replace Operation = "replace"
)

// Operations lists the operations in display order.
var Operations = []Operation{Enqueue, Dequeue, Replace}

// ParseOperation checks that name is a known operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", errors.Errorf("unknown operation %q", name)
}

// Supports reports whether arch can perform op. Dequeue and replace
// are universal. BRAM trees, hybrid trees and variants built with
// enqueue disabled cannot enqueue.
func Supports(op Operation, arch string) bool {
	if op != Enqueue {
		return true
	}
	a := strings.ToLower(arch)
	for _, s := range []string{"bram_tree", "hybrid_tree", "enq_disabled"} {
		if strings.Contains(a, s) {
			return false
		}
	}
	return true
}

// treeEnqueueArch is the architecture whose enqueue throughput falls
// with tree depth instead of being a fixed fraction of the clock.
const treeEnqueueArch = "register_tree"

// Factors maps each operation and architecture to the number of
// operations completed per clock cycle.
//
// A Factors value is built once, typically from configuration, and
// passed explicitly to Performance and Efficiency.
type Factors map[Operation]map[string]float64

// DefaultFactors returns the factor table for the known architectures.
// Architectures missing from an operation's table, including those
// that do not support the operation, get a factor of 1.
func DefaultFactors() Factors {
	return Factors{
		Enqueue: {
			"systolic_array": 1.0 / 2,
		},
		Dequeue: {
			"register_array_enq_disabled":        1,
			"register_array_enq_enabled":         1,
			"register_array_cycled_enq_disabled": 1.0 / 2,
			"register_array_cycled_enq_enabled":  1.0 / 2,
			"register_tree_enq_disabled":         1,
			"register_tree_enq_enabled":          1,
			"register_tree_cycled_enq_disabled":  1.0 / 2,
			"register_tree_cycled_enq_enabled":   1.0 / 2,
			"systolic_array":                     1.0 / 2,
			"register_tree":                      1.0 / 2,
			"bram_tree":                          1.0 / 8,
			"pipelined_bram_tree":                1.0 / 4,
			"hybrid_tree":                        1,
		},
		Replace: {
			"register_array_enq_disabled":        1,
			"register_array_enq_enabled":         1,
			"register_array_cycled_enq_disabled": 1.0 / 2,
			"register_array_cycled_enq_enabled":  1.0 / 2,
			"register_tree_enq_disabled":         1,
			"register_tree_enq_enabled":          1,
			"register_tree_cycled_enq_disabled":  1.0 / 2,
			"register_tree_cycled_enq_enabled":   1.0 / 2,
			"systolic_array":                     1.0 / 2,
			"register_tree":                      1.0 / 2,
			"bram_tree":                          1.0 / 8,
			"pipelined_bram_tree":                1.0 / 4,
			"hybrid_tree":                        1,
		},
	}
}

// Factor returns the per-cycle throughput of op on arch at queue size
// qs.
//
// For register_tree enqueue the factor is 1/log2(qs), or 1 when
// qs <= 1. Otherwise it is the table entry, or 1 if there is none.
func (f Factors) Factor(op Operation, arch string, qs int) float64 {
	if arch == treeEnqueueArch && op == Enqueue {
		if qs <= 1 {
			return 1
		}
		return 1 / math.Log2(float64(qs))
	}
	if v, ok := f[op][arch]; ok {
		return v
	}
	return 1
}

// Has reports whether f has an explicit entry for op and arch.
func (f Factors) Has(op Operation, arch string) bool {
	_, ok := f[op][arch]
	return ok
}

// Clone returns a deep copy of f.
func (f Factors) Clone() Factors {
	out := make(Factors, len(f))
	for op, archs := range f {
		m := make(map[string]float64, len(archs))
		for a, v := range archs {
			m[a] = v
		}
		out[op] = m
	}
	return out
}
