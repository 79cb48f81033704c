package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"strconv"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/errors"
	"github.com/cascadevis/cascade/pkg/render/waterfall"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

// RenderPNG renders the chart to PNG through the canvas rasterizer.
func RenderPNG(l *layout.Layout, cfg chart.Config) ([]byte, error) {
	c, err := renderCanvas(l, cfg)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode PNG")
	}
	return buf.Bytes(), nil
}

// RenderPDF renders the chart to a single-page PDF.
func RenderPDF(l *layout.Layout, cfg chart.Config) ([]byte, error) {
	c, err := renderCanvas(l, cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := pdf.New(&buf, l.FrameWidth, l.FrameHeight, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to write PDF")
	}
	return buf.Bytes(), nil
}

// renderCanvas executes the instruction list against a canvas sized to the
// viewport. The coordinate system is flipped to top-left origin so the
// instruction geometry applies unchanged.
func renderCanvas(l *layout.Layout, cfg chart.Config) (*canvas.Canvas, error) {
	family := canvas.NewFontFamily("sans")
	if err := family.LoadSystemFont("sans-serif", canvas.FontRegular); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to load font")
	}

	c := canvas.New(l.FrameWidth, l.FrameHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	// White background.
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(l.FrameWidth, l.FrameHeight))

	drawInstructions(ctx, family, waterfall.BuildInstructions(l, cfg))
	return c, nil
}

func drawInstructions(ctx *canvas.Context, family *canvas.FontFamily, ins []waterfall.Instruction) {
	for _, in := range ins {
		switch v := in.(type) {
		case waterfall.Line:
			drawLine(ctx, v)
		case waterfall.Rect:
			drawRect(ctx, v)
		case waterfall.Text:
			drawText(ctx, family, v)
		case waterfall.Group:
			drawInstructions(ctx, family, v.Items)
		}
	}
}

func drawLine(ctx *canvas.Context, l waterfall.Line) {
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(rgba(l.Color))
	ctx.SetStrokeWidth(l.Width)
	if l.Dashed {
		ctx.SetDashes(0.0, 4.0, 2.0)
	} else {
		ctx.SetDashes(0.0)
	}
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(l.X2-l.X1, l.Y2-l.Y1)
	ctx.DrawPath(l.X1, l.Y1, p)
	ctx.SetDashes(0.0)
}

func drawRect(ctx *canvas.Context, r waterfall.Rect) {
	ctx.SetStrokeColor(canvas.Transparent)
	if r.Pattern {
		drawDotOverlay(ctx, r)
		return
	}
	ctx.SetFillColor(rgba(r.Fill))
	ctx.DrawPath(r.X, r.Y, canvas.Rectangle(r.W, r.H))
}

// drawDotOverlay replicates the SVG dotted pattern: a 6px grid of small
// translucent dots across the rectangle.
func drawDotOverlay(ctx *canvas.Context, r waterfall.Rect) {
	ctx.SetFillColor(color.NRGBA{R: 255, G: 255, B: 255, A: 115})
	for y := r.Y + 3; y < r.Y+r.H; y += 6 {
		for x := r.X + 3; x < r.X+r.W; x += 6 {
			ctx.DrawPath(x-1, y-1, canvas.Circle(1))
		}
	}
}

func drawText(ctx *canvas.Context, family *canvas.FontFamily, t waterfall.Text) {
	face := family.Face(t.Size, rgba(t.Color), canvas.FontRegular, canvas.FontNormal)

	var align canvas.TextAlign
	switch t.Anchor {
	case waterfall.AnchorMiddle:
		align = canvas.Center
	case waterfall.AnchorEnd:
		align = canvas.Right
	default:
		align = canvas.Left
	}

	line := canvas.NewTextLine(face, t.Content, align)
	if t.Rotation != 0 {
		ctx.Push()
		ctx.RotateAbout(t.Rotation, t.X, t.Y)
		ctx.DrawText(t.X, t.Y, line)
		ctx.Pop()
		return
	}
	ctx.DrawText(t.X, t.Y, line)
}

// rgba parses #rgb or #rrggbb into a color, defaulting to black.
func rgba(hex string) color.RGBA {
	if len(hex) == 0 || hex[0] != '#' {
		return canvas.Black
	}
	s := hex[1:]
	if len(s) == 3 {
		s = s[0:1] + s[0:1] + s[1:2] + s[1:2] + s[2:3] + s[2:3]
	}
	if len(s) != 6 {
		return canvas.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return canvas.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
