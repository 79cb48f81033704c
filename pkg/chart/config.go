package chart

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cascadevis/cascade/pkg/errors"
)

// Config is the flat chart option set consumed by layout and drawing.
// The zero value is not useful; start from DefaultConfig and override,
// or load a TOML theme file over the defaults.
type Config struct {
	// BarWidth and BarGap are target sizes in pixels. Bars shrink to fit
	// the viewport while preserving the gap/width ratio, and never grow
	// past twice BarWidth.
	BarWidth float64 `toml:"bar_width" json:"bar_width"`
	BarGap   float64 `toml:"bar_gap" json:"bar_gap"`

	ShowValues    bool    `toml:"show_values" json:"show_values"`
	ValueFontSize float64 `toml:"value_font_size" json:"value_font_size"`

	ShowConnectors bool `toml:"show_connectors" json:"show_connectors"`

	BarColor       string `toml:"bar_color" json:"bar_color"`
	SubtotalColor  string `toml:"subtotal_color" json:"subtotal_color"`
	TotalColor     string `toml:"total_color" json:"total_color"`
	SeparatorColor string `toml:"separator_color" json:"separator_color"`
	ConnectorColor string `toml:"connector_color" json:"connector_color"`

	SubtotalPattern bool `toml:"subtotal_pattern" json:"subtotal_pattern"`
	TotalPattern    bool `toml:"total_pattern" json:"total_pattern"`

	ShowXAxis     bool    `toml:"show_x_axis" json:"show_x_axis"`
	XAxisFontSize float64 `toml:"x_axis_font_size" json:"x_axis_font_size"`
	XAxisColor    string  `toml:"x_axis_color" json:"x_axis_color"`

	// LabelRotation rotates axis labels in degrees, clamped to [0, 90].
	// Rotated labels anchor at their own origin and left-align.
	LabelRotation float64 `toml:"label_rotation" json:"label_rotation"`

	// MeasureColors overrides the measure color cycle.
	MeasureColors []string `toml:"measure_colors" json:"measure_colors,omitempty"`
}

// DefaultConfig returns the standard chart options.
func DefaultConfig() Config {
	return Config{
		BarWidth:        60,
		BarGap:          20,
		ShowValues:      true,
		ValueFontSize:   11,
		ShowConnectors:  true,
		BarColor:        "#4e79a7",
		SubtotalColor:   "#9097a3",
		TotalColor:      "#39465e",
		SeparatorColor:  "#999999",
		ConnectorColor:  "#a6a6a6",
		SubtotalPattern: false,
		TotalPattern:    true,
		ShowXAxis:       true,
		XAxisFontSize:   11,
		XAxisColor:      "#333333",
		LabelRotation:   0,
	}
}

// LoadConfig reads a TOML theme file over the defaults. Options absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read theme file")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse theme file")
	}
	cfg.Clamp()
	return cfg, nil
}

// Clamp forces out-of-range options back into their valid domains.
func (c *Config) Clamp() {
	if c.BarWidth <= 0 {
		c.BarWidth = DefaultConfig().BarWidth
	}
	if c.BarGap < 0 {
		c.BarGap = 0
	}
	if c.LabelRotation < 0 {
		c.LabelRotation = 0
	}
	if c.LabelRotation > 90 {
		c.LabelRotation = 90
	}
	if c.ValueFontSize <= 0 {
		c.ValueFontSize = DefaultConfig().ValueFontSize
	}
	if c.XAxisFontSize <= 0 {
		c.XAxisFontSize = DefaultConfig().XAxisFontSize
	}
}

// Palette builds the measure palette for this config.
func (c *Config) Palette() *Palette {
	return NewPalette(c.MeasureColors...)
}

// KindColor returns the fill color for a bar kind.
func (c *Config) KindColor(k Kind) string {
	switch k {
	case KindSubtotal:
		return c.SubtotalColor
	case KindTotal:
		return c.TotalColor
	default:
		return c.BarColor
	}
}

// KindPattern reports whether bars of this kind get the dotted overlay.
func (c *Config) KindPattern(k Kind) bool {
	switch k {
	case KindSubtotal:
		return c.SubtotalPattern
	case KindTotal:
		return c.TotalPattern
	default:
		return false
	}
}
