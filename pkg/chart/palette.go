package chart

// defaultColors is the measure color cycle, assigned by first-seen order.
var defaultColors = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b4",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
}

// Palette assigns each measure name a stable color by first-seen order.
// The same name always yields the same color within one palette, which
// keeps segment colors consistent across bars in a render.
type Palette struct {
	colors   []string
	assigned map[string]string
	next     int
}

// NewPalette creates a palette over the given color cycle. With no colors
// the default cycle is used.
func NewPalette(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	return &Palette{
		colors:   colors,
		assigned: make(map[string]string),
	}
}

// Color returns the color for a measure name, assigning the next cycle
// color on first sight. The cycle wraps when measures outnumber colors.
func (p *Palette) Color(measure string) string {
	if c, ok := p.assigned[measure]; ok {
		return c
	}
	c := p.colors[p.next%len(p.colors)]
	p.assigned[measure] = c
	p.next++
	return c
}
