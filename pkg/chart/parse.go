package chart

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/cascadevis/cascade/pkg/table"
)

// Parse converts a table into normalized bars, sorted ascending by sequence
// with input order preserved on ties. Malformed cells are normalized, never
// rejected: unrecognized kinds become steps, missing or non-numeric sequence
// cells default to the row index, and zero-valued measures are dropped from
// the stack. An empty table yields nil, the no-data signal.
func Parse(t *table.Table, p *Palette) []Bar {
	if t == nil || t.Empty() {
		return nil
	}
	if p == nil {
		p = NewPalette()
	}

	bars := make([]Bar, 0, t.Rows())
	for i := 0; i < t.Rows(); i++ {
		bar := Bar{
			Category: t.Categories[i],
			Kind:     ParseKind(t.Kinds[i]),
			Sequence: float64(i),
		}
		if i < len(t.Sequence) {
			if seq, err := strconv.ParseFloat(t.Sequence[i], 64); err == nil {
				bar.Sequence = seq
			}
		}

		for _, m := range t.Measures {
			v := m.Values[i]
			if v == 0 {
				continue
			}
			bar.Values = append(bar.Values, StackedValue{
				Measure: m.Name,
				Value:   v,
				Color:   p.Color(m.Name),
			})
			bar.Total += v
		}

		bars = append(bars, bar)
	}

	slices.SortStableFunc(bars, func(a, b Bar) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	return bars
}
