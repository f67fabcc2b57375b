// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthchart draws synthesis series as line charts.
//
// Every chart puts queue size on a base-2 logarithmic x axis and draws
// one line with markers per architecture, styled by Styles.
package synthchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no plottable points")

const pointRad = 4

// A Line is one architecture's curve in a chart.
type Line struct {
	Style  Style
	Points []synthseries.Point
}

// A Chart is a finished plot and the base name it is saved under.
type Chart struct {
	Name string
	Plot *plot.Plot
}

// LineChart plots lines against queue size. With logY the y axis is
// logarithmic too. Non-finite values are not drawn, nor are values
// that cannot be placed on a logarithmic axis. LineChart returns
// ErrNoData if no line has a point left.
func LineChart(title, yLabel string, lines []Line, logY bool) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "Queue Size"
	pl.Y.Label.Text = yLabel
	pl.X.Scale = plot.LogScale{}
	pl.X.Tick.Marker = pow2Ticks{}
	if logY {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{}
	}
	pl.Legend.Top = true
	pl.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xd0}
	grid.Horizontal.Color = color.Gray{0xd0}
	pl.Add(grid)

	drawn := 0
	for _, l := range lines {
		xys := make(plotter.XYs, 0, len(l.Points))
		for _, p := range l.Points {
			if p.QueueSize <= 0 || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
				continue
			}
			if logY && p.Value <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(p.QueueSize), Y: p.Value})
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = l.Style.Color
		line.LineStyle.Width = vg.Points(2)
		points.GlyphStyle.Color = l.Style.Color
		points.GlyphStyle.Shape = l.Style.Glyph
		points.GlyphStyle.Radius = vg.Points(pointRad)
		pl.Add(line, points)
		pl.Legend.Add(l.Style.DisplayName, line, points)
		drawn++
	}
	if drawn == 0 {
		return nil, errors.Wrap(ErrNoData, title)
	}
	return pl, nil
}

// summaryCharts lists the per-architecture metric charts.
var summaryCharts = []struct {
	metric synthfmt.Metric
	title  string
	yLabel string
}{
	{synthfmt.AchievedFrequency, "Maximum Achieved Frequency vs Queue Size", "Maximum Achieved Frequency (MHz)"},
	{synthfmt.Power, "Power vs Queue Size", "Power (W)"},
	{synthfmt.LUTsUsed, "LUT Usage vs Queue Size", "LUT Usage (Count)"},
	{synthfmt.LUTsUtil, "LUT Utilization Percentage vs Queue Size", "LUT Utilization (%)"},
	{synthfmt.RegistersUsed, "Register Usage vs Queue Size", "Register Usage (Count)"},
	{synthfmt.RegistersUtil, "Register Utilization Percentage vs Queue Size", "Register Utilization (%)"},
	{synthfmt.BRAMUsed, "BRAM Usage vs Queue Size", "BRAM Usage (Count)"},
	{synthfmt.BRAMUtil, "BRAM Utilization Percentage vs Queue Size", "BRAM Utilization (%)"},
}

// SummaryCharts draws each metric of s against queue size, followed
// by the performance of every operation s supports. Metrics that s
// never reports are skipped.
func SummaryCharts(s *synthseries.Series, f synthseries.Factors, st Styles) ([]Chart, error) {
	style := st.Lookup(s.Arch)
	var charts []Chart
	for _, c := range summaryCharts {
		pts := synthseries.MetricSeries(s, c.metric)
		if len(pts) == 0 {
			continue
		}
		pl, err := LineChart(c.title, c.yLabel, []Line{{style, pts}}, false)
		if errors.Is(err, ErrNoData) {
			continue
		} else if err != nil {
			return nil, err
		}
		charts = append(charts, Chart{Name: s.Arch + "_" + c.metric.String(), Plot: pl})
	}
	for _, op := range synthseries.Operations {
		if !synthseries.Supports(op, s.Arch) {
			continue
		}
		pl, err := LineChart(performanceTitle(op), "Performance (MOPS/s)",
			[]Line{{style, synthseries.Performance(s, f, op)}}, false)
		if errors.Is(err, ErrNoData) {
			continue
		} else if err != nil {
			return nil, err
		}
		charts = append(charts, Chart{Name: s.Arch + "_performance_" + string(op), Plot: pl})
	}
	return charts, nil
}

// ComparisonCharts draws all architectures together: performance and
// resource efficiency per operation, and binding resource utilization
// on logarithmic axes. Operations are drawn only for the
// architectures that support them.
func ComparisonCharts(all []*synthseries.Series, f synthseries.Factors, st Styles) ([]Chart, error) {
	var charts []Chart
	add := func(name, title, yLabel string, lines []Line, logY bool) error {
		pl, err := LineChart(title, yLabel, lines, logY)
		if errors.Is(err, ErrNoData) {
			return nil
		} else if err != nil {
			return err
		}
		charts = append(charts, Chart{Name: name, Plot: pl})
		return nil
	}

	for _, op := range synthseries.Operations {
		op := op
		err := add("performance_"+string(op), performanceTitle(op), "Performance (MOPS/s)",
			comparisonLines(all, op, st, func(s *synthseries.Series) []synthseries.Point {
				return synthseries.Performance(s, f, op)
			}), false)
		if err != nil {
			return nil, err
		}
	}
	for _, op := range synthseries.Operations {
		op := op
		err := add("efficiency_"+string(op), capitalize(string(op))+" Resource Efficiency", "Performance / Resource",
			comparisonLines(all, op, st, func(s *synthseries.Series) []synthseries.Point {
				return synthseries.Efficiency(s, f, op)
			}), false)
		if err != nil {
			return nil, err
		}
	}
	err := add("resource_utilization", "FPGA Resource Utilization vs Queue Size", "FPGA Resource Utilization (%)",
		comparisonLines(all, "", st, synthseries.ResourceUtilization), true)
	if err != nil {
		return nil, err
	}
	return charts, nil
}

// comparisonLines computes one line per series that supports op. An
// empty op selects every series.
func comparisonLines(all []*synthseries.Series, op synthseries.Operation, st Styles, fn func(*synthseries.Series) []synthseries.Point) []Line {
	var lines []Line
	for _, s := range all {
		if op != "" && !synthseries.Supports(op, s.Arch) {
			continue
		}
		lines = append(lines, Line{Style: st.Lookup(s.Arch), Points: fn(s)})
	}
	return lines
}

// TrialChart plots the achieved frequency of every trial of rep
// against its target, with the line where the two are equal.
func TrialChart(rep *synthfmt.Report, style Style) (*plot.Plot, error) {
	xys := make(plotter.XYs, 0, len(rep.Trials))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range rep.Trials {
		xys = append(xys, plotter.XY{X: t.Target, Y: t.Achieved})
		lo = math.Min(lo, t.Target)
		hi = math.Max(hi, t.Target)
	}
	if len(xys) == 0 {
		return nil, errors.Wrap(ErrNoData, rep.Name)
	}

	pl := plot.New()
	pl.Title.Text = "Achieved vs Target Frequency"
	pl.X.Label.Text = "Target Frequency (MHz)"
	pl.Y.Label.Text = "Achieved Frequency (MHz)"
	pl.Add(plotter.NewGrid())

	ideal, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, err
	}
	ideal.LineStyle.Color = color.Gray{0x80}
	ideal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = style.Color
	points.GlyphStyle.Color = style.Color
	points.GlyphStyle.Shape = style.Glyph
	points.GlyphStyle.Radius = vg.Points(pointRad)

	pl.Add(ideal, line, points)
	pl.Legend.Add("target", ideal)
	pl.Legend.Add(style.DisplayName, line, points)
	pl.Legend.Top = true
	pl.Legend.Left = true
	return pl, nil
}

// Formats lists the file formats Save accepts.
var Formats = []string{"png", "svg", "pdf"}

// Save writes pl to dir/name.format, creating dir if needed, and
// returns the file name.
func Save(pl *plot.Plot, dir, name, format string) (string, error) {
	ok := false
	for _, f := range Formats {
		ok = ok || f == format
	}
	if !ok {
		return "", errors.Errorf("unsupported chart format %q", format)
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", err
	}
	file := filepath.Join(dir, strings.ReplaceAll(name, "/", "-per-")+"."+format)
	if err := pl.Save(20*vg.Centimeter, 14*vg.Centimeter, file); err != nil {
		return "", errors.Wrapf(err, "saving %s", file)
	}
	return file, nil
}

func performanceTitle(op synthseries.Operation) string {
	return capitalize(string(op)) + " Performance"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// pow2Ticks labels powers of two, thinning them out so at most about
// a dozen are labeled.
type pow2Ticks struct{}

const maxTicks = 12

func (pow2Ticks) Ticks(min, max float64) []plot.Tick {
	if !(min > 0) || max < min {
		return nil
	}
	lo := math.Floor(math.Log2(min))
	hi := math.Ceil(math.Log2(max))
	step := math.Max(1, math.Ceil((hi-lo)/maxTicks))
	var ticks []plot.Tick
	for e := lo; e <= hi; e += step {
		v := math.Exp2(e)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

func (c Chart) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Plot.Title.Text)
}
