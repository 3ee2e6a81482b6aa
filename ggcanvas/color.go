package ggcanvas

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor reads a CSS color: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// "rgb(r, g, b)", "rgba(r, g, b, a)", a CSS color name, or "transparent".
// Unreadable colors come back as opaque black with ok == false.
func ParseColor(s string) (c gg.RGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		switch len(s) {
		case 4, 5, 7, 9:
			if _, err := strconv.ParseUint(s[1:], 16, 64); err == nil {
				return gg.Hex(s), true
			}
		}
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		if c, ok := parseRGBFunc(s); ok {
			return c, true
		}
	case s == "transparent":
		return gg.Transparent, true
	default:
		if named, found := colornames.Map[s]; found {
			return gg.FromColor(named), true
		}
	}
	return gg.RGBA2(0, 0, 0, 1), false
}

// parseRGBFunc reads rgb(r, g, b) and rgba(r, g, b, a) with channels in
// 0..255 (or percentages) and alpha in 0..1.
func parseRGBFunc(s string) (gg.RGBA, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return gg.RGBA{}, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return gg.RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = min(max(v, 0), 1)
	}
	return gg.RGBA2(ch[0], ch[1], ch[2], ch[3]), true
}
