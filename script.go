package cascade

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure of an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and snapshots across frames. Attach
// it to a world with SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a JSON input script:
//
//	{"steps": [
//	  {"action": "click", "x": 10, "y": 20},
//	  {"action": "keydown", "key": "LEFT"},
//	  {"action": "wait", "frames": 3},
//	  {"action": "keyup", "key": "LEFT"},
//	  {"action": "snapshot", "label": "moved"}
//	]}
//
// Actions are click, rightclick, keydown, keyup, wait and snapshot.
func LoadInputScript(data []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "rightclick", "wait", "snapshot":
		case "keydown", "keyup":
			if _, ok := KeyCode(st.Key); !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a script runner. Its next step runs at the start of
// every frame.
func (w *World) SetScript(r *ScriptRunner) {
	w.script = r
}

// Done reports whether every step has run and its input was applied.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(w *World) {
	if r.done {
		return
	}
	if len(w.inject) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		w.Snapshot(st.Label)
	case "click":
		w.InjectClick(st.X, st.Y)
	case "rightclick":
		w.InjectRightClick(st.X, st.Y)
	case "keydown":
		w.InjectKeyDown(st.Key)
	case "keyup":
		w.InjectKeyUp(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}
}
