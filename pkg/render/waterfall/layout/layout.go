// Package layout positions normalized bars in 2D space. It is a pure
// function of the sorted bar list, the chart options, and the viewport:
// horizontal packing picks a bar width and gap that fill the available
// width, and a running-total fold assigns each bar its vertical span in
// data units. Nothing here mutates its input.
package layout

import (
	"math"

	"github.com/cascadevis/cascade/pkg/chart"
)

// Fixed frame margins in pixels. The bottom margin leaves room for axis
// labels.
const (
	MarginLeft   = 20.0
	MarginRight  = 20.0
	MarginTop    = 20.0
	MarginBottom = 40.0
)

// Bar is a positioned bar: the normalized record plus its geometry.
// X is the left edge in pixels; StartY and EndY are the vertical span in
// data units, converted to pixels through Layout.Y.
type Bar struct {
	chart.Bar
	X      float64 `json:"x"`
	StartY float64 `json:"start_y"`
	EndY   float64 `json:"end_y"`
}

// Layout is the positioned chart. BarWidth and Gap are the packed pixel
// sizes chosen for this viewport, returned explicitly for the draw stage.
// MaxAbs is the largest absolute span endpoint across all bars, floored
// at 1 so the y scale never divides by zero.
type Layout struct {
	Bars        []Bar   `json:"bars"`
	BarWidth    float64 `json:"bar_width"`
	Gap         float64 `json:"gap"`
	MaxAbs      float64 `json:"max_abs"`
	FrameWidth  float64 `json:"frame_width"`
	FrameHeight float64 `json:"frame_height"`
}

// Build lays out bars for a width x height viewport. The bar list must
// already be sorted; layout never re-sorts.
func Build(bars []chart.Bar, cfg chart.Config, width, height float64) *Layout {
	l := &Layout{
		FrameWidth:  width,
		FrameHeight: height,
		MaxAbs:      1,
	}
	n := len(bars)
	if n == 0 {
		return l
	}

	l.BarWidth, l.Gap = pack(n, cfg.BarWidth, cfg.BarGap, width-MarginLeft-MarginRight)

	running := 0.0
	l.Bars = make([]Bar, n)
	for i, b := range bars {
		pb := Bar{Bar: b, X: MarginLeft + float64(i)*(l.BarWidth+l.Gap)}
		switch b.Kind {
		case chart.KindStep:
			pb.StartY = running
			pb.EndY = running + b.Total
			running = pb.EndY
		case chart.KindSubtotal, chart.KindTotal:
			pb.StartY = 0
			pb.EndY = running
		case chart.KindBar:
			pb.StartY = 0
			pb.EndY = b.Total
		}
		l.Bars[i] = pb

		if abs := math.Abs(pb.StartY); abs > l.MaxAbs {
			l.MaxAbs = abs
		}
		if abs := math.Abs(pb.EndY); abs > l.MaxAbs {
			l.MaxAbs = abs
		}
	}
	return l
}

// pack fits n bars and n-1 gaps into the available width while keeping
// the configured gap/width ratio. Bars shrink as needed but never grow
// past twice the target width.
func pack(n int, targetWidth, targetGap, available float64) (w, g float64) {
	if available < 0 {
		available = 0
	}
	if targetWidth <= 0 {
		targetWidth = chart.DefaultConfig().BarWidth
	}
	r := targetGap / targetWidth
	w = available / (float64(n) + float64(n-1)*r)
	if limit := 2 * targetWidth; w > limit {
		w = limit
	}
	return w, w * r
}

// ChartHeight is the vertical pixel extent of the plotting area.
func (l *Layout) ChartHeight() float64 {
	return l.FrameHeight - MarginTop - MarginBottom
}

// Y converts a data-unit value to a pixel y coordinate. The scale is
// linear with value 0 at the baseline and MaxAbs at the top margin.
func (l *Layout) Y(v float64) float64 {
	return MarginTop + l.ChartHeight() - v/l.MaxAbs*l.ChartHeight()
}

// Baseline is the pixel y coordinate of value 0.
func (l *Layout) Baseline() float64 {
	return l.Y(0)
}

// Right returns the pixel x coordinate just past the last bar.
func (l *Layout) Right() float64 {
	if len(l.Bars) == 0 {
		return MarginLeft
	}
	return l.Bars[len(l.Bars)-1].X + l.BarWidth
}
