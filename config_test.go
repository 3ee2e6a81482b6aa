package cascade

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testScene = `{
	"screen": {"w": 100, "h": 50},
	"resources": ["res/hero.png"],
	"elements": [
		{
			"specs": "#hero Hero",
			"options": {"x": 10, "y": 20, "w": 16, "h": 24, "zIndex": 1},
			"attrs": {"speed": 2},
			"drawings": {
				"skin": {"shape": "rect", "sprite": {"url": "res/hero.png"}},
				"body": {"shape": "rect", "fill": {"color": "#330099"}}
			}
		},
		{"specs": "Cloud", "options": {"x": 0, "y": 0}}
	]
}`

func TestParseSceneConfig(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Screen.W != 100 || cfg.Screen.H != 50 {
		t.Errorf("screen = %+v", cfg.Screen)
	}
	if !reflect.DeepEqual(cfg.Resources, []string{"res/hero.png"}) {
		t.Errorf("resources = %v", cfg.Resources)
	}
	if len(cfg.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(cfg.Elements))
	}
}

func TestSceneBuild(t *testing.T) {
	cfg, err := ParseSceneConfig([]byte(testScene))
	if err != nil {
		t.Fatal(err)
	}
	w := NewWorld(nil)
	built := 0
	w.Def("Hero", func(*Element, Options) { built++ })

	els := cfg.Build(w)
	if len(els) != 2 || w.Len() != 2 {
		t.Fatalf("built %d elements, world has %d", len(els), w.Len())
	}
	if built != 1 {
		t.Errorf("Hero constructor ran %d times", built)
	}
	if s := w.Screen(); s.Width != 100 || s.Height != 50 {
		t.Errorf("screen = %v", s)
	}

	hero := w.Get("hero")
	if hero == nil {
		t.Fatal("#hero missing")
	}
	if x, _ := hero.X.Get(); x != 10 {
		t.Errorf("x = %v", x)
	}
	if v, _ := hero.Attr("speed"); v != 2.0 {
		t.Errorf("speed = %v", v)
	}
	if got := hero.DrawingKeys(); !reflect.DeepEqual(got, []string{"body", "skin"}) {
		t.Errorf("drawings = %v, want key order", got)
	}

	hero.Drawing("body").OffsetX = 99
	if cfg.Elements[0].Drawings["body"].OffsetX != 0 {
		t.Error("built drawings must not alias the config")
	}
}

func TestSceneConfigErrorLocation(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		element string
		drawing string
		field   string
	}{
		{
			"by id",
			`{"elements": [{"specs": "#hero", "drawings": {"body": {"sprite": {"url": ""}}}}]}`,
			"#hero", "body", "sprite.url",
		},
		{
			"by index",
			`{"elements": [{"specs": "A"}, {"specs": "B", "drawings": {"d": {"stroke": {"thickness": -2}}}}]}`,
			"elements[1]", "d", "stroke.thickness",
		},
		{
			"screen",
			`{"screen": {"w": -1, "h": 10}}`,
			"", "", "screen",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneConfig([]byte(tt.data))
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if ce.Element != tt.element || ce.Drawing != tt.drawing || ce.Field != tt.field {
				t.Errorf("error at %q %q %q, want %q %q %q",
					ce.Element, ce.Drawing, ce.Field, tt.element, tt.drawing, tt.field)
			}
		})
	}
}

func TestSceneConfigUnknownShape(t *testing.T) {
	_, err := ParseSceneConfig([]byte(`{"elements": [{"drawings": {"d": {"shape": "hexagon"}}}]}`))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestSceneConfigMalformed(t *testing.T) {
	_, err := ParseSceneConfig([]byte(`{"elements": [`))
	if err == nil || errors.Is(err, ErrConfig) {
		t.Errorf("err = %v, want a plain parse error", err)
	}
}

func TestLoadSceneConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSceneConfig(path); err != nil {
		t.Errorf("LoadSceneConfig: %v", err)
	}
	if _, err := LoadSceneConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}
