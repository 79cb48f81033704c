package waterfall

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a value with the K/M/B magnitude scheme shared by
// labels and tooltips. Billions always carry one decimal; thousands and
// millions keep up to two decimals with trailing zeros stripped, as do
// plain values below one thousand. Zero is "0" and sign is preserved.
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 1, 64) + "B"
	case abs >= 1e6:
		return trimZeros(strconv.FormatFloat(v/1e6, 'f', 2, 64)) + "M"
	case abs >= 1e3:
		return trimZeros(strconv.FormatFloat(v/1e3, 'f', 2, 64)) + "K"
	default:
		return trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	}
}

// trimZeros strips trailing zeros and a dangling decimal point from a
// fixed-decimal number string.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
