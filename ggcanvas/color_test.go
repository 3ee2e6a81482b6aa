package ggcanvas

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   gg.RGBA
		wantOK bool
	}{
		{"#ff0000", gg.RGBA2(1, 0, 0, 1), true},
		{"#f00", gg.RGBA2(1, 0, 0, 1), true},
		{"#0000ff80", gg.RGBA2(0, 0, 1, 128.0/255), true},
		{"  #00FF00 ", gg.RGBA2(0, 1, 0, 1), true},
		{"rgb(255, 0, 0)", gg.RGBA2(1, 0, 0, 1), true},
		{"rgba(200, 100, 100, 0.8)", gg.RGBA2(200.0/255, 100.0/255, 100.0/255, 0.8), true},
		{"rgb(100%, 0%, 50%)", gg.RGBA2(1, 0, 0.5, 1), true},
		{"red", gg.RGBA2(1, 0, 0, 1), true},
		{"White", gg.RGBA2(1, 1, 1, 1), true},
		{"transparent", gg.Transparent, true},
		{"#zzz", gg.RGBA2(0, 0, 0, 1), false},
		{"rgb(1, 2)", gg.RGBA2(0, 0, 0, 1), false},
		{"notacolor", gg.RGBA2(0, 0, 0, 1), false},
		{"", gg.RGBA2(0, 0, 0, 1), false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if !closeRGBA(got, tt.want) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func closeRGBA(a, b gg.RGBA) bool {
	const eps = 0.01
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
