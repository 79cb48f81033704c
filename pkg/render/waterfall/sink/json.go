package sink

import (
	"encoding/json"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/errors"
	"github.com/cascadevis/cascade/pkg/render/waterfall"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

type jsonOutput struct {
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	BarWidth     float64      `json:"bar_width"`
	Gap          float64      `json:"gap"`
	MaxAbs       float64      `json:"max_abs"`
	Bars         []layout.Bar `json:"bars"`
	Instructions []jsonShape  `json:"instructions"`
}

// jsonShape is one draw instruction with an explicit type tag.
type jsonShape struct {
	Type string `json:"type"`

	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Color    string  `json:"color,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Dashed   bool    `json:"dashed,omitempty"`
	Pattern  bool    `json:"pattern,omitempty"`
	Tooltip  string  `json:"tooltip,omitempty"`
	Content  string  `json:"content,omitempty"`
	Size     float64 `json:"size,omitempty"`
	Anchor   string  `json:"anchor,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`

	Items []jsonShape `json:"items,omitempty"`
}

// RenderJSON exports the positioned layout and its draw instructions as a
// pretty-printed JSON document, for external tools and for caching rendered
// geometry. The export is complete enough to re-draw the chart without
// re-running layout.
func RenderJSON(l *layout.Layout, cfg chart.Config) ([]byte, error) {
	out := jsonOutput{
		Width:        l.FrameWidth,
		Height:       l.FrameHeight,
		BarWidth:     l.BarWidth,
		Gap:          l.Gap,
		MaxAbs:       l.MaxAbs,
		Bars:         l.Bars,
		Instructions: shapes(waterfall.BuildInstructions(l, cfg)),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to marshal layout")
	}
	return data, nil
}

func shapes(ins []waterfall.Instruction) []jsonShape {
	out := make([]jsonShape, 0, len(ins))
	for _, in := range ins {
		switch v := in.(type) {
		case waterfall.Line:
			out = append(out, jsonShape{
				Type: "line",
				X1:   v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2,
				Color: v.Color, Width: v.Width, Dashed: v.Dashed,
			})
		case waterfall.Rect:
			out = append(out, jsonShape{
				Type: "rect",
				X:    v.X, Y: v.Y, W: v.W, H: v.H,
				Color: v.Fill, Pattern: v.Pattern, Tooltip: v.Tooltip,
			})
		case waterfall.Text:
			out = append(out, jsonShape{
				Type: "text",
				X:    v.X, Y: v.Y,
				Content: v.Content, Color: v.Color, Size: v.Size,
				Anchor: string(v.Anchor), Rotation: v.Rotation,
			})
		case waterfall.Group:
			out = append(out, jsonShape{Type: "group", Items: shapes(v.Items)})
		}
	}
	return out
}
