package cascade

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
)

// SceneConfig is a declarative scene: a screen size, resources to preload,
// and elements with their drawings.
//
//	{
//	  "screen": {"w": 320, "h": 240},
//	  "resources": ["res/player.png"],
//	  "elements": [{
//	    "specs": "#player Hero",
//	    "options": {"x": 10, "y": 20, "w": 16, "h": 24, "zIndex": 1},
//	    "attrs": {"speed": 2},
//	    "drawings": {
//	      "body": {"shape": "rect", "fill": {"color": "#330099"}},
//	      "skin": {"shape": "rect", "sprite": {"url": "res/player.png", "frames": 4, "delay": 10}}
//	    }
//	  }]
//	}
type SceneConfig struct {
	Screen    ScreenConfig    `json:"screen"`
	Resources []string        `json:"resources"`
	Elements  []ElementConfig `json:"elements"`
}

// ScreenConfig is the logical screen size.
type ScreenConfig struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ElementConfig describes one element of a scene.
type ElementConfig struct {
	Specs    string              `json:"specs"`
	Options  Options             `json:"options"`
	Attrs    map[string]any      `json:"attrs"`
	Drawings map[string]*Drawing `json:"drawings"`
}

// ParseSceneConfig decodes and validates a scene. Drawing errors are
// reported as *ConfigError.
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSceneConfig reads and parses a scene file.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseSceneConfig(data)
}

// Validate checks every drawing of every element.
func (c *SceneConfig) Validate() error {
	if c.Screen.W < 0 || c.Screen.H < 0 {
		return configErrorf("screen", "negative size %gx%g", c.Screen.W, c.Screen.H)
	}
	var errs []error
	for i, ec := range c.Elements {
		for _, key := range slices.Sorted(maps.Keys(ec.Drawings)) {
			d := ec.Drawings[key]
			if d == nil {
				continue
			}
			if err := d.Validate(); err != nil {
				errs = append(errs, withLocation(err, elementLabel(ec.Specs, i), key))
			}
		}
	}
	return errors.Join(errs...)
}

func elementLabel(specs string, i int) string {
	if id, _ := parseSpecs(specs); id != "" {
		return "#" + id
	}
	return fmt.Sprintf("elements[%d]", i)
}

// Build creates the scene's elements in w, in file order. Drawings are added
// in key order. Classes named in specs run their constructors as usual, so
// define them before building.
func (c *SceneConfig) Build(w *World) []*Element {
	if c.Screen.W > 0 && c.Screen.H > 0 {
		w.SetScreenSize(c.Screen.W, c.Screen.H)
	}
	out := make([]*Element, 0, len(c.Elements))
	for _, ec := range c.Elements {
		e := w.New(ec.Specs, ec.Options)
		if ec.Attrs != nil {
			e.Merge(ec.Attrs)
		}
		for _, key := range slices.Sorted(maps.Keys(ec.Drawings)) {
			if d := ec.Drawings[key]; d != nil {
				cp := *d
				e.SetDrawing(key, &cp)
			}
		}
		out = append(out, e)
	}
	return out
}
