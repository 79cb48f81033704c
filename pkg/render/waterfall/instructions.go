// Package waterfall builds draw instructions from a positioned chart
// layout. Instructions are an ordered, renderer-neutral shape list; sinks
// execute them against SVG, raster canvases, or structured export. The
// list is produced fresh on every render and never mutated afterwards.
package waterfall

// Anchor is the horizontal text alignment relative to the text position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Instruction is one drawing operation. Implementations are Line, Rect,
// Text, and Group; sinks switch over the concrete type.
type Instruction interface {
	instruction()
}

// Line is a straight stroke between two points.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  string
	Width  float64
	Dashed bool
}

// Rect is a filled rectangle. Pattern marks the dotted overlay fill
// instead of a solid color; Tooltip carries hover text for sinks that
// support it.
type Rect struct {
	X, Y    float64
	W, H    float64
	Fill    string
	Pattern bool
	Tooltip string
}

// Text is a positioned label. Y is the baseline. Rotation is in degrees,
// clockwise about the anchor point.
type Text struct {
	X, Y     float64
	Content  string
	Color    string
	Size     float64
	Anchor   Anchor
	Rotation float64
}

// Group bundles the shapes of one logical element, such as the stacked
// segments of a single bar.
type Group struct {
	Items []Instruction
}

func (Line) instruction()  {}
func (Rect) instruction()  {}
func (Text) instruction()  {}
func (Group) instruction() {}
