package waterfall

import (
	"strings"
	"testing"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1500, "1.5K"},
		{2000000, "2M"},
		{-950, "-950"},
		{1234567890, "1.2B"},
		{1000, "1K"},
		{999, "999"},
		{999.5, "999.5"},
		{0.25, "0.25"},
		{-1500000, "-1.5M"},
		{2500000000, "2.5B"},
		{1230, "1.23K"},
		{-0.1, "-0.1"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		fill string
		want string
	}{
		{"#ffffff", "#333333"},
		{"#000000", "#ffffff"},
		{"#4e79a7", "#ffffff"},
		{"#edc948", "#333333"},
		{"#fff", "#333333"},
		{"not-a-color", "#333333"},
		{"", "#333333"},
	}
	for _, tt := range tests {
		if got := ContrastColor(tt.fill); got != tt.want {
			t.Errorf("ContrastColor(%q) = %q, want %q", tt.fill, got, tt.want)
		}
	}
}

func buildLayout(bars []chart.Bar) *layout.Layout {
	return layout.Build(bars, chart.DefaultConfig(), 800, 600)
}

func collect[T Instruction](ins []Instruction) []T {
	var out []T
	for _, in := range ins {
		switch v := in.(type) {
		case T:
			out = append(out, v)
		case Group:
			out = append(out, collect[T](v.Items)...)
		}
	}
	return out
}

func TestBuildInstructionsEmpty(t *testing.T) {
	l := buildLayout(nil)
	ins := BuildInstructions(l, chart.DefaultConfig())
	if len(ins) != 1 {
		t.Fatalf("empty layout should yield one instruction, got %d", len(ins))
	}
	txt, ok := ins[0].(Text)
	if !ok {
		t.Fatalf("placeholder should be a Text, got %T", ins[0])
	}
	if txt.Content != placeholderText || txt.Anchor != AnchorMiddle {
		t.Errorf("unexpected placeholder: %+v", txt)
	}
}

func TestBuildInstructionsBaseline(t *testing.T) {
	l := buildLayout([]chart.Bar{{Category: "a", Kind: chart.KindStep, Total: 100}})
	ins := BuildInstructions(l, chart.DefaultConfig())

	line, ok := ins[0].(Line)
	if !ok {
		t.Fatalf("first instruction should be the baseline, got %T", ins[0])
	}
	if line.Y1 != line.Y2 || line.Y1 != l.Baseline() {
		t.Errorf("baseline at y=%v/%v, want %v", line.Y1, line.Y2, l.Baseline())
	}
	if line.Dashed {
		t.Error("baseline should be solid")
	}
}

func TestSeparatorPlacement(t *testing.T) {
	cfg := chart.DefaultConfig()

	tests := []struct {
		name  string
		kinds []chart.Kind
		want  int // index of first independent bar, -1 for none
	}{
		{"step then bars", []chart.Kind{chart.KindStep, chart.KindBar, chart.KindBar}, 1},
		{"after total", []chart.Kind{chart.KindStep, chart.KindTotal, chart.KindBar}, 2},
		{"no independent bars", []chart.Kind{chart.KindStep, chart.KindSubtotal}, -1},
		{"all independent", []chart.Kind{chart.KindBar, chart.KindBar}, -1},
		{"only first transition counts", []chart.Kind{chart.KindStep, chart.KindBar, chart.KindStep, chart.KindBar}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := make([]chart.Bar, len(tt.kinds))
			for i, k := range tt.kinds {
				bars[i] = chart.Bar{Category: "c", Kind: k, Total: 10}
			}
			l := buildLayout(bars)
			ins := BuildInstructions(l, cfg)

			var seps []Line
			for _, in := range ins {
				if line, ok := in.(Line); ok && line.Dashed && line.X1 == line.X2 {
					seps = append(seps, line)
				}
			}

			if tt.want < 0 {
				if len(seps) != 0 {
					t.Fatalf("expected no separator, got %d", len(seps))
				}
				return
			}
			if len(seps) != 1 {
				t.Fatalf("expected exactly one separator, got %d", len(seps))
			}
			wantX := l.Bars[tt.want].X - l.Gap/2
			if seps[0].X1 != wantX {
				t.Errorf("separator at x=%v, want %v", seps[0].X1, wantX)
			}
			if seps[0].Color != cfg.SeparatorColor {
				t.Errorf("separator color %q", seps[0].Color)
			}
		})
	}
}

func TestConnectors(t *testing.T) {
	bars := []chart.Bar{
		{Category: "a", Kind: chart.KindStep, Total: 100},
		{Category: "b", Kind: chart.KindStep, Total: 50},
		{Category: "c", Kind: chart.KindSubtotal},
		{Category: "d", Kind: chart.KindStep, Total: 10},
	}
	l := buildLayout(bars)
	cfg := chart.DefaultConfig()
	ins := BuildInstructions(l, cfg)

	var conns []Line
	for _, in := range ins {
		if line, ok := in.(Line); ok && line.Dashed && line.Y1 == line.Y2 {
			conns = append(conns, line)
		}
	}

	// Only the a->b pair is step-to-step adjacent.
	if len(conns) != 1 {
		t.Fatalf("expected 1 connector, got %d", len(conns))
	}
	c := conns[0]
	if c.X1 != l.Bars[0].X+l.BarWidth || c.X2 != l.Bars[1].X {
		t.Errorf("connector spans x %v..%v", c.X1, c.X2)
	}
	if c.Y1 != l.Y(l.Bars[0].EndY) {
		t.Errorf("connector at y=%v, want %v", c.Y1, l.Y(l.Bars[0].EndY))
	}

	// Suppressed entirely when disabled.
	cfg.ShowConnectors = false
	ins = BuildInstructions(l, cfg)
	for _, in := range ins {
		if line, ok := in.(Line); ok && line.Dashed && line.Y1 == line.Y2 {
			t.Fatal("connectors should be suppressed")
		}
	}
}

func TestBarRects(t *testing.T) {
	bars := []chart.Bar{
		{Category: "up", Kind: chart.KindStep, Total: 100,
			Values: []chart.StackedValue{{Measure: "v", Value: 100, Color: "#4e79a7"}}},
		{Category: "tiny", Kind: chart.KindStep, Total: 0.0001,
			Values: []chart.StackedValue{{Measure: "v", Value: 0.0001, Color: "#4e79a7"}}},
		{Category: "snap", Kind: chart.KindTotal},
	}
	l := buildLayout(bars)
	cfg := chart.DefaultConfig()
	rects := collect[Rect](BuildInstructions(l, cfg))

	// One rect per plain bar plus the pattern overlay on the total bar.
	if len(rects) != 4 {
		t.Fatalf("expected 4 rects, got %d", len(rects))
	}

	for _, r := range rects {
		if r.H < 1 {
			t.Errorf("rect height %v below the 1px minimum", r.H)
		}
	}

	// Near-zero bar clamps to the minimum height.
	if rects[1].H != 1 {
		t.Errorf("near-zero bar height = %v, want 1", rects[1].H)
	}

	// Total bar: solid rect in the total color, then the pattern overlay
	// with identical geometry.
	solid, overlay := rects[2], rects[3]
	if solid.Fill != cfg.TotalColor {
		t.Errorf("total bar fill %q, want %q", solid.Fill, cfg.TotalColor)
	}
	if !overlay.Pattern {
		t.Error("overlay rect should be pattern-filled")
	}
	if overlay.X != solid.X || overlay.Y != solid.Y || overlay.W != solid.W || overlay.H != solid.H {
		t.Error("overlay geometry should match the solid rect")
	}
	if !strings.Contains(solid.Tooltip, "snap: 100") {
		t.Errorf("total tooltip should show the cumulative value, got %q", solid.Tooltip)
	}
}

func TestStackedSegments(t *testing.T) {
	bars := []chart.Bar{
		{Category: "mix", Kind: chart.KindStep, Total: 150, Values: []chart.StackedValue{
			{Measure: "Revenue", Value: 100, Color: "#4e79a7"},
			{Measure: "Fees", Value: 50, Color: "#f28e2b"},
		}},
	}
	l := buildLayout(bars)
	rects := collect[Rect](BuildInstructions(l, chart.DefaultConfig()))

	if len(rects) != 2 {
		t.Fatalf("expected one rect per segment, got %d", len(rects))
	}
	if rects[0].Fill != "#4e79a7" || rects[1].Fill != "#f28e2b" {
		t.Errorf("segment fills wrong: %q, %q", rects[0].Fill, rects[1].Fill)
	}
	if !strings.Contains(rects[0].Tooltip, "mix\nRevenue: 100") {
		t.Errorf("segment tooltip = %q", rects[0].Tooltip)
	}

	// Segments stack upward from the bar start: the second segment sits
	// directly above the first.
	if rects[1].Y+rects[1].H != rects[0].Y {
		t.Errorf("segments should stack: top of first %v, bottom of second %v",
			rects[0].Y, rects[1].Y+rects[1].H)
	}
}

func TestValueLabels(t *testing.T) {
	bars := []chart.Bar{
		{Category: "big", Kind: chart.KindStep, Total: 1500, Values: []chart.StackedValue{
			{Measure: "a", Value: 1000, Color: "#000000"},
			{Measure: "b", Value: 500, Color: "#ffffff"},
		}},
	}
	l := buildLayout(bars)
	cfg := chart.DefaultConfig()
	texts := collect[Text](BuildInstructions(l, cfg))

	// Bar label, two segment labels, one axis label.
	var barLabel *Text
	var segmentColors []string
	for i := range texts {
		switch texts[i].Content {
		case "1.5K":
			barLabel = &texts[i]
		case "1K", "500":
			segmentColors = append(segmentColors, texts[i].Color)
		}
	}
	if barLabel == nil {
		t.Fatal("missing bar value label")
	}
	top := l.Y(l.Bars[0].EndY)
	if barLabel.Y >= top {
		t.Errorf("value label should sit above the bar top (%v), got %v", top, barLabel.Y)
	}
	if len(segmentColors) != 2 {
		t.Fatalf("expected 2 segment labels, got %d", len(segmentColors))
	}
	// Contrasting colors: white on the black segment, dark on the white one.
	if segmentColors[0] != "#ffffff" || segmentColors[1] != "#333333" {
		t.Errorf("segment label colors = %v", segmentColors)
	}

	// No labels at all when disabled.
	cfg.ShowValues = false
	cfg.ShowXAxis = false
	if texts := collect[Text](BuildInstructions(l, cfg)); len(texts) != 0 {
		t.Errorf("labels should be suppressed, got %d", len(texts))
	}
}

func TestSegmentLabelsSkippedWhenShort(t *testing.T) {
	// Two bars: the large one sets the scale, making the stacked one short.
	bars := []chart.Bar{
		{Category: "scale", Kind: chart.KindBar, Total: 100000},
		{Category: "short", Kind: chart.KindBar, Total: 30, Values: []chart.StackedValue{
			{Measure: "a", Value: 20, Color: "#000000"},
			{Measure: "b", Value: 10, Color: "#ffffff"},
		}},
	}
	l := buildLayout(bars)
	cfg := chart.DefaultConfig()
	cfg.ShowXAxis = false
	texts := collect[Text](BuildInstructions(l, cfg))

	// Only the two bar value labels; the short stacked bar gets no
	// per-segment labels.
	if len(texts) != 2 {
		t.Errorf("expected 2 labels, got %d: %+v", len(texts), texts)
	}
}

func TestAxisLabelRotation(t *testing.T) {
	bars := []chart.Bar{{Category: "Quarter One", Kind: chart.KindStep, Total: 10}}
	l := buildLayout(bars)

	cfg := chart.DefaultConfig()
	cfg.ShowValues = false
	texts := collect[Text](BuildInstructions(l, cfg))
	if len(texts) != 1 {
		t.Fatalf("expected 1 axis label, got %d", len(texts))
	}
	if texts[0].Anchor != AnchorMiddle || texts[0].Rotation != 0 {
		t.Errorf("unrotated label should center: %+v", texts[0])
	}

	cfg.LabelRotation = 45
	texts = collect[Text](BuildInstructions(l, cfg))
	if texts[0].Anchor != AnchorStart || texts[0].Rotation != 45 {
		t.Errorf("rotated label should left-align with rotation: %+v", texts[0])
	}
}

func TestInstructionOrder(t *testing.T) {
	bars := []chart.Bar{
		{Category: "a", Kind: chart.KindStep, Total: 100},
		{Category: "b", Kind: chart.KindBar, Total: 30},
	}
	l := buildLayout(bars)
	ins := BuildInstructions(l, chart.DefaultConfig())

	// Back-to-front: lines first, then bar groups, then text.
	phase := 0
	for _, in := range ins {
		var p int
		switch in.(type) {
		case Line:
			p = 0
		case Group:
			p = 1
		case Text:
			p = 2
		}
		if p < phase {
			t.Fatalf("instruction out of draw order: %T after phase %d", in, phase)
		}
		phase = p
	}
}
