// Package chart turns tabular input into normalized waterfall bars.
//
// A bar's kind decides how the layout fold treats it: step bars advance the
// running total, subtotal and total bars float at the cumulative value
// without advancing it, and independent bars span their raw value from zero.
package chart

import (
	"encoding/json"
	"strings"
)

// Kind classifies how a bar participates in the running total.
type Kind int

const (
	// KindStep contributes its value to the running total and is drawn as
	// the incremental span.
	KindStep Kind = iota

	// KindSubtotal floats at [0, runningTotal] without advancing it.
	KindSubtotal

	// KindTotal is positioned exactly like a subtotal; the distinction is
	// presentational (dedicated color and optional pattern overlay).
	KindTotal

	// KindBar spans [0, value] independent of the running total.
	KindBar
)

// ParseKind maps a raw tag to a Kind, case-insensitively. Unrecognized or
// empty tags fall back to KindStep.
func ParseKind(tag string) Kind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "subtotal":
		return KindSubtotal
	case "total":
		return KindTotal
	case "bar":
		return KindBar
	default:
		return KindStep
	}
}

// String returns the canonical tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindSubtotal:
		return "subtotal"
	case KindTotal:
		return "total"
	case KindBar:
		return "bar"
	default:
		return "step"
	}
}

// Cumulative reports whether the kind participates in the cumulative part
// of the chart. Independent bars are drawn after the separator.
func (k Kind) Cumulative() bool {
	return k != KindBar
}

// MarshalJSON encodes the kind as its canonical tag.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a tag, applying the same fallback as ParseKind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	*k = ParseKind(tag)
	return nil
}

// StackedValue is one measure's contribution within a bar.
type StackedValue struct {
	Measure string  `json:"measure"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
}

// Bar is a normalized chart bar. Values holds one entry per non-zero
// measure in measure column order; Total is their sum.
type Bar struct {
	Category string         `json:"category"`
	Kind     Kind           `json:"kind"`
	Sequence float64        `json:"sequence"`
	Values   []StackedValue `json:"values"`
	Total    float64        `json:"total"`
}

// Stacked reports whether the bar is drawn as multiple stacked segments.
func (b *Bar) Stacked() bool {
	return len(b.Values) > 1
}
