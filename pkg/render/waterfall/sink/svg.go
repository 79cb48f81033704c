package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cascadevis/cascade/pkg/chart"
	"github.com/cascadevis/cascade/pkg/render/waterfall"
	"github.com/cascadevis/cascade/pkg/render/waterfall/layout"
)

// dotPatternID names the dotted overlay fill in the SVG defs.
const dotPatternID = "cascade-dots"

const dotPatternDef = `  <defs>
    <pattern id="` + dotPatternID + `" width="6" height="6" patternUnits="userSpaceOnUse">
      <circle cx="3" cy="3" r="1" fill="#ffffff" fill-opacity="0.45"/>
    </pattern>
  </defs>
`

// RenderSVG renders the chart as a standalone SVG document. Tooltips become
// <title> children so browsers show them on hover, and the dotted overlay
// is emitted as a <pattern> def only when some rectangle uses it.
func RenderSVG(l *layout.Layout, cfg chart.Config) []byte {
	ins := waterfall.BuildInstructions(l, cfg)

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.FrameWidth, l.FrameHeight, l.FrameWidth, l.FrameHeight)

	if usesPattern(ins) {
		buf.WriteString(dotPatternDef)
	}

	writeInstructions(&buf, ins, "  ")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func usesPattern(ins []waterfall.Instruction) bool {
	for _, in := range ins {
		switch v := in.(type) {
		case waterfall.Rect:
			if v.Pattern {
				return true
			}
		case waterfall.Group:
			if usesPattern(v.Items) {
				return true
			}
		}
	}
	return false
}

func writeInstructions(buf *bytes.Buffer, ins []waterfall.Instruction, indent string) {
	for _, in := range ins {
		switch v := in.(type) {
		case waterfall.Line:
			writeLine(buf, v, indent)
		case waterfall.Rect:
			writeRect(buf, v, indent)
		case waterfall.Text:
			writeText(buf, v, indent)
		case waterfall.Group:
			buf.WriteString(indent + "<g>\n")
			writeInstructions(buf, v.Items, indent+"  ")
			buf.WriteString(indent + "</g>\n")
		}
	}
}

func writeLine(buf *bytes.Buffer, l waterfall.Line, indent string) {
	fmt.Fprintf(buf, `%s<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"`,
		indent, l.X1, l.Y1, l.X2, l.Y2, l.Color, l.Width)
	if l.Dashed {
		buf.WriteString(` stroke-dasharray="4 2"`)
	}
	buf.WriteString("/>\n")
}

func writeRect(buf *bytes.Buffer, r waterfall.Rect, indent string) {
	fill := r.Fill
	if r.Pattern {
		fill = "url(#" + dotPatternID + ")"
	}
	fmt.Fprintf(buf, `%s<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
		indent, r.X, r.Y, r.W, r.H, fill)
	if r.Tooltip == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, ">\n%s  <title>%s</title>\n%s</rect>\n",
		indent, escape(r.Tooltip), indent)
}

func writeText(buf *bytes.Buffer, t waterfall.Text, indent string) {
	fmt.Fprintf(buf,
		`%s<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" font-family="sans-serif" text-anchor="%s"`,
		indent, t.X, t.Y, t.Color, t.Size, t.Anchor)
	if t.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.1f %.1f %.1f)"`, t.Rotation, t.X, t.Y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escape(t.Content))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
