package waterfall

import "strconv"

// ContrastColor picks a readable label color against a hex background:
// dark text on light fills, white text on dark fills. Unparseable colors
// get dark text.
func ContrastColor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "#333333"
	}
	// Perceived luminance, ITU-R BT.601 weights.
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if lum > 150 {
		return "#333333"
	}
	return "#ffffff"
}

// parseHex reads #rgb or #rrggbb.
func parseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, false
	}
	s = s[1:]
	switch len(s) {
	case 3:
		rv, err1 := strconv.ParseUint(s[0:1]+s[0:1], 16, 8)
		gv, err2 := strconv.ParseUint(s[1:2]+s[1:2], 16, 8)
		bv, err3 := strconv.ParseUint(s[2:3]+s[2:3], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0, false
		}
		return uint8(rv), uint8(gv), uint8(bv), true
	case 6:
		rv, err1 := strconv.ParseUint(s[0:2], 16, 8)
		gv, err2 := strconv.ParseUint(s[2:4], 16, 8)
		bv, err3 := strconv.ParseUint(s[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, 0, 0, false
		}
		return uint8(rv), uint8(gv), uint8(bv), true
	default:
		return 0, 0, 0, false
	}
}
