package waterfall

import (
	"math"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

// Label layout constants in pixels.
const (
	valueLabelOffset = 4
	axisLabelOffset  = 4
	valueLabelColor  = "#333333"
	placeholderText  = "No data available"

	// Stacked bars shorter than this skip per-segment labels.
	segmentLabelMinHeight = 30

	// Every rectangle keeps at least this height so zero and near-zero
	// bars stay visible.
	minRectHeight = 1
)

// BuildInstructions turns a positioned layout into the ordered shape list,
// back to front: baseline, separator, connectors, bars, value labels, axis
// labels. An empty layout yields a single centered placeholder text.
func BuildInstructions(l *layout.Layout, cfg chart.Config) []Instruction {
	if len(l.Bars) == 0 {
		return []Instruction{Text{
			X:       l.FrameWidth / 2,
			Y:       l.FrameHeight / 2,
			Content: placeholderText,
			Color:   valueLabelColor,
			Size:    14,
			Anchor:  AnchorMiddle,
		}}
	}

	var out []Instruction
	out = append(out, baseline(l, cfg))
	if sep, ok := separator(l, cfg); ok {
		out = append(out, sep)
	}
	if cfg.ShowConnectors {
		out = append(out, connectors(l, cfg)...)
	}
	for i := range l.Bars {
		out = append(out, barShapes(l, &l.Bars[i], cfg))
	}
	if cfg.ShowValues {
		out = append(out, valueLabels(l, cfg)...)
	}
	if cfg.ShowXAxis {
		out = append(out, axisLabels(l, cfg)...)
	}
	return out
}

// baseline is the horizontal line at value 0.
func baseline(l *layout.Layout, cfg chart.Config) Instruction {
	y := l.Baseline()
	return Line{
		X1: layout.MarginLeft, Y1: y,
		X2: l.Right(), Y2: y,
		Color: cfg.XAxisColor,
		Width: 1,
	}
}

// separator is the dashed vertical divider at the first transition from a
// cumulative bar to an independent bar. At most one is drawn.
func separator(l *layout.Layout, cfg chart.Config) (Instruction, bool) {
	for i := 1; i < len(l.Bars); i++ {
		if l.Bars[i].Kind == chart.KindBar && l.Bars[i-1].Kind.Cumulative() {
			x := l.Bars[i].X - l.Gap/2
			return Line{
				X1: x, Y1: layout.MarginTop,
				X2: x, Y2: layout.MarginTop + l.ChartHeight(),
				Color:  cfg.SeparatorColor,
				Width:  1,
				Dashed: true,
			}, true
		}
	}
	return nil, false
}

// connectors joins each adjacent pair of step bars with a dashed line at
// the earlier bar's cumulative height.
func connectors(l *layout.Layout, cfg chart.Config) []Instruction {
	var out []Instruction
	for i := 1; i < len(l.Bars); i++ {
		prev, cur := &l.Bars[i-1], &l.Bars[i]
		if prev.Kind != chart.KindStep || cur.Kind != chart.KindStep {
			continue
		}
		y := l.Y(prev.EndY)
		out = append(out, Line{
			X1: prev.X + l.BarWidth, Y1: y,
			X2: cur.X, Y2: y,
			Color:  cfg.ConnectorColor,
			Width:  1,
			Dashed: true,
		})
	}
	return out
}

// barShapes draws one bar as a group: stacked segments with per-segment
// tooltips, or a single kind-colored rectangle with an optional pattern
// overlay on top.
func barShapes(l *layout.Layout, b *layout.Bar, cfg chart.Config) Instruction {
	g := Group{}

	if b.Stacked() && !cfg.KindPattern(b.Kind) {
		cum := b.StartY
		for _, sv := range b.Values {
			y, h := rectSpan(l, cum, cum+sv.Value)
			g.Items = append(g.Items, Rect{
				X: b.X, Y: y, W: l.BarWidth, H: h,
				Fill:    sv.Color,
				Tooltip: b.Category + "\n" + sv.Measure + ": " + FormatValue(sv.Value),
			})
			cum += sv.Value
		}
		return g
	}

	y, h := rectSpan(l, b.StartY, b.EndY)
	tooltip := b.Category + ": " + FormatValue(b.EndY-b.StartY)
	g.Items = append(g.Items, Rect{
		X: b.X, Y: y, W: l.BarWidth, H: h,
		Fill:    cfg.KindColor(b.Kind),
		Tooltip: tooltip,
	})
	if cfg.KindPattern(b.Kind) {
		g.Items = append(g.Items, Rect{
			X: b.X, Y: y, W: l.BarWidth, H: h,
			Pattern: true,
			Tooltip: tooltip,
		})
	}
	return g
}

// rectSpan converts a data-unit span to a pixel rectangle, enforcing the
// minimum height.
func rectSpan(l *layout.Layout, from, to float64) (y, h float64) {
	y1, y2 := l.Y(from), l.Y(to)
	y = math.Min(y1, y2)
	h = math.Abs(y1 - y2)
	if h < minRectHeight {
		h = minRectHeight
	}
	return y, h
}

// valueLabels places one label above each bar, plus per-segment labels in
// contrasting color when a stacked bar is tall enough to hold them.
func valueLabels(l *layout.Layout, cfg chart.Config) []Instruction {
	var out []Instruction
	for i := range l.Bars {
		b := &l.Bars[i]
		top := math.Min(l.Y(b.StartY), l.Y(b.EndY))
		out = append(out, Text{
			X:       b.X + l.BarWidth/2,
			Y:       top - valueLabelOffset,
			Content: FormatValue(b.EndY - b.StartY),
			Color:   valueLabelColor,
			Size:    cfg.ValueFontSize,
			Anchor:  AnchorMiddle,
		})

		if !b.Stacked() {
			continue
		}
		if _, h := rectSpan(l, b.StartY, b.EndY); h <= segmentLabelMinHeight {
			continue
		}
		cum := b.StartY
		for _, sv := range b.Values {
			mid := (l.Y(cum) + l.Y(cum+sv.Value)) / 2
			out = append(out, Text{
				X:       b.X + l.BarWidth/2,
				Y:       mid,
				Content: FormatValue(sv.Value),
				Color:   ContrastColor(sv.Color),
				Size:    cfg.ValueFontSize,
				Anchor:  AnchorMiddle,
			})
			cum += sv.Value
		}
	}
	return out
}

// axisLabels places category labels under the plotting area, centered or
// rotated about their own anchor point.
func axisLabels(l *layout.Layout, cfg chart.Config) []Instruction {
	y := layout.MarginTop + l.ChartHeight() + cfg.XAxisFontSize + axisLabelOffset
	var out []Instruction
	for i := range l.Bars {
		b := &l.Bars[i]
		label := Text{
			X:       b.X + l.BarWidth/2,
			Y:       y,
			Content: b.Category,
			Color:   cfg.XAxisColor,
			Size:    cfg.XAxisFontSize,
			Anchor:  AnchorMiddle,
		}
		if cfg.LabelRotation > 0 {
			label.Anchor = AnchorStart
			label.Rotation = cfg.LabelRotation
		}
		out = append(out, label)
	}
	return out
}
