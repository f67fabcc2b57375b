// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthchart

import (
	"image/color"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Style is how one architecture is drawn in every chart.
type Style struct {
	Color       color.Color
	Glyph       draw.GlyphDrawer
	DisplayName string
}

// Styles maps architecture names to styles.
type Styles map[string]Style

// DefaultStyles returns the styles of the known architectures.
func DefaultStyles() Styles {
	st := make(Styles)
	for _, d := range []struct{ arch, color, marker, name string }{
		{"register_array_enq_disabled", "royalblue", "o", "Register Array (Enqueue Disabled)"},
		{"register_array_enq_enabled", "royalblue", "D", "Register Array (Enqueue Enabled)"},
		{"register_array_cycled_enq_disabled", "violet", "X", "Register Array 2 Cycle (Enqueue Disabled)"},
		{"register_array_cycled_enq_enabled", "violet", "P", "Register Array 2 Cycle (Enqueue Enabled)"},
		{"systolic_array", "lime", "^", "Systolic Array"},
		{"register_tree_enq_disabled", "maroon", "8", "Register Tree (Enqueue Disabled)"},
		{"register_tree_enq_enabled", "maroon", "^", "Register Tree (Enqueue Enabled)"},
		{"register_tree_cycled_enq_disabled", "darkorange", "h", "Register Tree 2 Cycle (Enqueue Disabled)"},
		{"register_tree_cycled_enq_enabled", "darkorange", "v", "Register Tree 2 Cycle (Enqueue Enabled)"},
		{"bram_tree", "violet", "s", "BRAM Tree"},
		{"pipelined_bram_tree", "slategray", "D", "BRAM Tree Pipelined"},
		{"hybrid_tree", "orange", "d", "Hybrid Tree"},
	} {
		s, err := NewStyle(d.color, d.marker, d.name)
		if err != nil {
			panic(err)
		}
		st[d.arch] = s
	}
	return st
}

// NewStyle builds a Style from a color name and a marker code.
func NewStyle(colorName, marker, displayName string) (Style, error) {
	c, err := ParseColor(colorName)
	if err != nil {
		return Style{}, err
	}
	g, err := ParseMarker(marker)
	if err != nil {
		return Style{}, err
	}
	return Style{Color: c, Glyph: g, DisplayName: displayName}, nil
}

// ParseColor resolves an SVG color name such as "royalblue".
func ParseColor(name string) (color.Color, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown color %q", name)
	}
	return c, nil
}

// ParseMarker resolves a marker code: o, D, d, X, x, P, +, ^, v, 8,
// h, s or ".".
func ParseMarker(code string) (draw.GlyphDrawer, error) {
	g, ok := glyphs[code]
	if !ok {
		return nil, errors.Errorf("unknown marker %q", code)
	}
	return g, nil
}

// Lookup returns the style for arch. An exact entry wins; otherwise
// the longest entry that contains arch or is contained in it. If
// nothing matches, arch is drawn in gray with its words capitalized.
func (st Styles) Lookup(arch string) Style {
	if s, ok := st[arch]; ok {
		return s
	}
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(arch, k) || strings.Contains(k, arch) {
			return st[k]
		}
	}
	return Style{Color: colornames.Gray, Glyph: draw.CircleGlyph{}, DisplayName: displayName(arch)}
}

func displayName(arch string) string {
	words := strings.FieldsFunc(arch, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
	}
	return strings.Join(words, " ")
}

var glyphs = map[string]draw.GlyphDrawer{
	"o": draw.CircleGlyph{},
	".": draw.CircleGlyph{},
	"D": diamondGlyph{},
	"d": thinDiamondGlyph{},
	"X": crossGlyph{},
	"x": draw.CrossGlyph{},
	"P": draw.PlusGlyph{},
	"+": draw.PlusGlyph{},
	"^": draw.PyramidGlyph{},
	"v": triDownGlyph{},
	"8": draw.RingGlyph{},
	"h": hexagonGlyph{},
	"s": draw.SquareGlyph{},
}

const (
	cosπover4 = vg.Length(.707106781202420)
	sinπover6 = vg.Length(.500000000025921)
	cosπover6 = vg.Length(.866025403769473)
)

// crossGlyph draws a heavier X than draw.CrossGlyph.
type crossGlyph struct{}

func (crossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(2)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

type triDownGlyph struct{}

func (triDownGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X + r*cosπover6, Y: pt.Y + r*sinπover6},
		{X: pt.X - r*cosπover6, Y: pt.Y + r*sinπover6},
	})
}

type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + r, Y: pt.Y},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - r, Y: pt.Y},
	})
}

type thinDiamondGlyph struct{}

func (thinDiamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	w := r * sinπover6
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + w, Y: pt.Y},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - w, Y: pt.Y},
	})
}

type hexagonGlyph struct{}

func (hexagonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	c.FillPolygon(sty.Color, []vg.Point{
		{X: pt.X, Y: pt.Y + r},
		{X: pt.X + r*cosπover6, Y: pt.Y + r*sinπover6},
		{X: pt.X + r*cosπover6, Y: pt.Y - r*sinπover6},
		{X: pt.X, Y: pt.Y - r},
		{X: pt.X - r*cosπover6, Y: pt.Y - r*sinπover6},
		{X: pt.X - r*cosπover6, Y: pt.Y + r*sinπover6},
	})
}
