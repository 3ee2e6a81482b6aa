package cascade

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDrawingUnmarshalJSON(t *testing.T) {
	data := `{
		"zIndex": 2,
		"offsetX": 3,
		"w": 0,
		"shape": [[0, 0], [10, 0], {"x": 5, "y": 8}],
		"flip": "x",
		"anchor": [1, 1],
		"fill": {"linearGradient": {"end": [0, 100], "1": "blue", "0": "white", "0.5": "gray"}},
		"stroke": {"color": "black", "thickness": 2, "cap": "round", "join": "miter"},
		"sprite": {"url": "hero.png", "frames": 4, "delay": 6, "repeat": "xy"}
	}`
	var d Drawing
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.ZIndex.Get(); v != 2 || d.OffsetX != 3 {
		t.Errorf("zIndex = %v, offsetX = %v", v, d.OffsetX)
	}
	if v, ok := d.W.Get(); !ok || v != 0 {
		t.Errorf("w = %v, %v, want set 0", v, ok)
	}
	if d.H.IsSet() || d.Angle.IsSet() {
		t.Error("absent fields should stay unset")
	}
	wantShape := Polygon(Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 8})
	if !reflect.DeepEqual(d.Shape, wantShape) {
		t.Errorf("shape = %v", d.Shape)
	}
	if d.Flip != FlipX {
		t.Errorf("flip = %v", d.Flip)
	}

	g := d.Fill.LinearGradient
	wantStops := []ColorStop{{0, "white"}, {0.5, "gray"}, {1, "blue"}}
	if !reflect.DeepEqual(g.Stops, wantStops) {
		t.Errorf("stops = %v, want %v", g.Stops, wantStops)
	}
	if g.Start.IsSet() {
		t.Error("start should default")
	}
	if d.Stroke.Color != "black" || d.Stroke.Thickness != 2 || d.Stroke.Cap != LineCapRound || d.Stroke.Join != LineJoinMiter {
		t.Errorf("stroke = %+v", d.Stroke)
	}
	if s := d.Sprite; s.URL != "hero.png" || s.Frames != 4 || s.Delay != 6 || s.Repeat != FlipX|FlipY {
		t.Errorf("sprite = %+v", s)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestShapeJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
	}{
		{`"rect"`, Rectangle()},
		{`"circle"`, Circle()},
		{`""`, Shape{}},
		{`null`, Shape{}},
		{`[[1, 2], [3, 4]]`, Polygon(Vec2{1, 2}, Vec2{3, 4})},
	}
	for _, tt := range tests {
		var s Shape
		if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(s, tt.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.in, s, tt.want)
		}
	}

	var s Shape
	if err := json.Unmarshal([]byte(`"hexagon"`), &s); !errors.Is(err, ErrConfig) {
		t.Errorf("unknown shape: err = %v, want ErrConfig", err)
	}

	data, _ := json.Marshal(Polygon(Vec2{1, 2}))
	if string(data) != `[[1,2]]` {
		t.Errorf("Marshal polygon = %s", data)
	}
	data, _ = json.Marshal(Circle())
	if string(data) != `"circle"` {
		t.Errorf("Marshal circle = %s", data)
	}
}

func TestLinearGradientMarshal(t *testing.T) {
	g := LinearGradient{End: Some(Vec2{100, 100}), Stops: []ColorStop{{0, "red"}, {1, "blue"}}}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var back LinearGradient
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, g) {
		t.Errorf("decoded %s as %+v, want %+v", data, back, g)
	}
}

func TestLinearGradientResolveDefaults(t *testing.T) {
	g := &LinearGradient{Stops: []ColorStop{{0, "red"}}}
	r := g.resolve(200, 50)
	if r.X0 != 0 || r.Y0 != 0 || r.X1 != 200 || r.Y1 != 0 {
		t.Errorf("resolved = %+v, want 0,0 -> 200,0", r)
	}
}

func TestPaintStyle(t *testing.T) {
	both := &Paint{Color: "red", LinearGradient: &LinearGradient{}}
	if s, ok := both.style(10, 10); !ok || s.Color != "red" || s.Gradient != nil {
		t.Errorf("color should win: %+v", s)
	}
	if _, ok := (&Paint{}).style(10, 10); ok {
		t.Error("empty paint should report no style")
	}
	var nilPaint *Paint
	if _, ok := nilPaint.style(10, 10); ok {
		t.Error("nil paint should report no style")
	}
}

func TestDrawingValidate(t *testing.T) {
	tests := []struct {
		name  string
		d     Drawing
		field string
	}{
		{"unknown shape", Drawing{Shape: Shape{Kind: 42}}, "shape"},
		{"short polygon", Drawing{Shape: Polygon(Vec2{1, 1})}, "shape"},
		{"stop offset", Drawing{Fill: &Paint{LinearGradient: &LinearGradient{Stops: []ColorStop{{1.5, "red"}}}}}, "fill.linearGradient.1.5"},
		{"stop color", Drawing{Stroke: &Stroke{Paint: Paint{LinearGradient: &LinearGradient{Stops: []ColorStop{{0.5, ""}}}}}}, "stroke.linearGradient.0.5"},
		{"negative thickness", Drawing{Stroke: &Stroke{Thickness: -1}}, "stroke.thickness"},
		{"sprite url", Drawing{Sprite: &Sprite{}}, "sprite.url"},
		{"negative frames", Drawing{Sprite: &Sprite{URL: "a", Frames: -1}}, "sprite.frames"},
		{"missing delay", Drawing{Sprite: &Sprite{URL: "a", Frames: 3}}, "sprite.delay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestDrawingValidateAccepts(t *testing.T) {
	valid := []Drawing{
		{},
		{Shape: Rectangle(), Fill: &Paint{}},
		{Shape: Polygon(Vec2{0, 0}, Vec2{1, 1})},
		{Fill: &Paint{Color: "red", LinearGradient: &LinearGradient{Stops: []ColorStop{{7, ""}}}}},
		{Sprite: &Sprite{URL: "a", Frames: 0}},
		{Shape: Shape{Kind: 42}, Func: func(*Element, Graphics) {}},
	}
	for i, d := range valid {
		if err := d.Validate(); err != nil {
			t.Errorf("drawing %d: %v", i, err)
		}
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Element: "#hero", Drawing: "body", Field: "shape", Reason: "bad"}
	if got := err.Error(); got != "cascade: #hero:body.shape: bad" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}
