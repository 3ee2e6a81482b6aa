package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/cascade"
)

const testScene = `{
  "screen": {"w": 16, "h": 16},
  "elements": [{
    "specs": "#box",
    "options": {"x": 0, "y": 0, "w": 8, "h": 8},
    "drawings": {"body": {"shape": "rect", "fill": {"color": "red"}}}
  }]
}`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderWritesFinalFrame(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	scene := writeFile(t, dir, "scene.json", testScene)

	if err := render(context.Background(), renderOptions{scene: scene, out: out, frames: 2}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "final.png")); err != nil {
		t.Errorf("final.png: %v", err)
	}
}

func TestRenderScriptSnapshots(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	scene := writeFile(t, dir, "scene.json", testScene)
	script := writeFile(t, dir, "script.json", `{"steps": [
		{"action": "wait", "frames": 2},
		{"action": "snapshot", "label": "after wait"}
	]}`)

	// frames is lower than the script needs; the script still finishes.
	if err := render(context.Background(), renderOptions{scene: scene, script: script, out: out, frames: 1}); err != nil {
		t.Fatalf("render: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(out, "*_after_wait.png"))
	if len(matches) != 1 {
		t.Errorf("snapshots = %v, want one *_after_wait.png", matches)
	}
}

func TestRenderInvalidScene(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "scene.json", `{"elements": [{"specs": "#a", "drawings": {"d": {"shape": "hexagon"}}}]}`)

	err := render(context.Background(), renderOptions{scene: scene, out: dir, frames: 1})
	if !errors.Is(err, cascade.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestRenderMissingScene(t *testing.T) {
	err := render(context.Background(), renderOptions{scene: filepath.Join(t.TempDir(), "nope.json"), frames: 1})
	if err == nil {
		t.Fatal("expected error for missing scene")
	}
}

func TestRootCmdRequiresScene(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(new(discard))
	cmd.SetErr(new(discard))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without a scene argument")
	}
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
