package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

func testLayout() *layout.Layout {
	bars := []chart.Bar{
		{Category: "Start", Kind: chart.KindStep, Total: 100,
			Values: []chart.StackedValue{{Measure: "Revenue", Value: 100, Color: "#4e79a7"}}},
		{Category: "Add <QA>", Kind: chart.KindStep, Total: 50,
			Values: []chart.StackedValue{{Measure: "Revenue", Value: 50, Color: "#4e79a7"}}},
		{Category: "Total", Kind: chart.KindTotal},
		{Category: "Other", Kind: chart.KindBar, Total: 30,
			Values: []chart.StackedValue{{Measure: "Revenue", Value: 30, Color: "#4e79a7"}}},
	}
	return layout.Build(bars, chart.DefaultConfig(), 800, 600)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout(), chart.DefaultConfig()))

	checks := []struct {
		name string
		want string
	}{
		{"svg root", `<svg xmlns="http://www.w3.org/2000/svg"`},
		{"viewport size", `viewBox="0 0 800.0 600.0"`},
		{"pattern def for total bar", `<pattern id="cascade-dots"`},
		{"pattern fill", `fill="url(#cascade-dots)"`},
		{"bar rect", `<rect`},
		{"dashed separator", `stroke-dasharray="4 2"`},
		{"tooltip", `<title>Start: 100</title>`},
		{"escaped category", `Add &lt;QA&gt;`},
		{"axis label", `>Other</text>`},
		{"closing tag", `</svg>`},
	}
	for _, c := range checks {
		if !strings.Contains(svg, c.want) {
			t.Errorf("SVG missing %s: %q", c.name, c.want)
		}
	}
}

func TestRenderSVGNoPatternDef(t *testing.T) {
	cfg := chart.DefaultConfig()
	cfg.TotalPattern = false
	svg := string(RenderSVG(testLayout(), cfg))
	if strings.Contains(svg, "<pattern") {
		t.Error("pattern def should be omitted when nothing uses it")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	l := layout.Build(nil, chart.DefaultConfig(), 400, 300)
	svg := string(RenderSVG(l, chart.DefaultConfig()))
	if !strings.Contains(svg, "No data available") {
		t.Error("empty layout should render the placeholder")
	}
	if strings.Contains(svg, "<rect") {
		t.Error("empty layout should not draw bars")
	}
}

func TestRenderSVGRotatedLabels(t *testing.T) {
	cfg := chart.DefaultConfig()
	cfg.LabelRotation = 45
	svg := string(RenderSVG(testLayout(), cfg))
	if !strings.Contains(svg, `transform="rotate(45.0`) {
		t.Error("rotated labels should carry a rotate transform")
	}
	if !strings.Contains(svg, `text-anchor="start"`) {
		t.Error("rotated labels should left-align")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout(), chart.DefaultConfig())
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}

	var out struct {
		Width  float64 `json:"width"`
		MaxAbs float64 `json:"max_abs"`
		Bars   []struct {
			Category string  `json:"category"`
			Kind     string  `json:"kind"`
			EndY     float64 `json:"end_y"`
		} `json:"bars"`
		Instructions []struct {
			Type string `json:"type"`
		} `json:"instructions"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.Width != 800 {
		t.Errorf("width = %v, want 800", out.Width)
	}
	if out.MaxAbs != 150 {
		t.Errorf("max_abs = %v, want 150", out.MaxAbs)
	}
	if len(out.Bars) != 4 {
		t.Fatalf("bars = %d, want 4", len(out.Bars))
	}
	if out.Bars[2].Kind != "total" || out.Bars[2].EndY != 150 {
		t.Errorf("total bar exported wrong: %+v", out.Bars[2])
	}

	types := map[string]bool{}
	for _, in := range out.Instructions {
		types[in.Type] = true
	}
	for _, want := range []string{"line", "group", "text"} {
		if !types[want] {
			t.Errorf("instructions missing type %q", want)
		}
	}
}
