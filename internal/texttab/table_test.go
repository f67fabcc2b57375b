// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a Align, w int, want string) {
		t.Helper()
		if got := a.pad(s, w); got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", Left, 10, "abc")
	check("abc", Center, 10, "   abc")
	check("abc", Center, 11, "    abc")
	check("abc", Right, 10, "       abc")
	check("☃", Right, 4, "   ☃")
	check("toolong", Right, 3, "toolong")
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var got strings.Builder
		if err := tab.Format(&got); err != nil {
			t.Fatal(err)
		}
		if want != got.String() {
			t.Errorf("want:\n%sgot:\n%s", want, got.String())
		}
		tab = Table{}
	}

	// Basic test.
	tab.Row().Cells("a", "b", "c")
	tab.Row().Cells("d", "e", "f")
	check("a  b  c\nd  e  f\n")

	// Padding, with no trailing spaces.
	tab.Row().Cells("a", "b", "c")
	tab.Row().Cells("long", "e", "long")
	check("a     b  c\nlong  e  long\n")

	// Column and cell alignment.
	tab.SetAlign(1, Right)
	tab.Row().Cells("x", "1")
	tab.Row().Cells("y", "100")
	tab.Row().Cell("z").AlignedCell("2", Left)
	check("x    1\ny  100\nz  2\n")

	// Rules span the table.
	tab.Row().Cells("name", "qs")
	tab.Rule('-')
	tab.Cells("bram_tree", "7")
	check("name       qs\n-------------\nbram_tree  7\n")

	// Short rows and blank rows.
	tab.Row().Cell("a")
	tab.Row()
	tab.Row().Cellf("%d-%s", 1, "b").Cell("c")
	check("a\n\n1-b  c\n")
}
