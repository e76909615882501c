package storycam

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a playback script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Z      float64 `json:"z,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a playback script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// knownActions lists the accepted step actions.
var knownActions = map[string]bool{
	"wheel": true, "scroll": true, "interact": true, "hold": true,
	"move": true, "snapshot": true, "wait": true, "resume": true, "reset": true,
}

// ScriptRunner sequences injected input, cursor moves, and snapshots across
// frames for automated playback. Attach to a Director via SetScriptRunner.
//
// A script looks like:
//
//	{"steps": [
//	  {"action": "move", "x": 0, "y": 0, "z": 24},
//	  {"action": "wait", "frames": 30},
//	  {"action": "interact"},
//	  {"action": "scroll", "delta": 200, "frames": 10},
//	  {"action": "snapshot", "label": "after-scroll"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON playback script and returns a ScriptRunner
// ready to be attached via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner. Its step method is called at the
// start of Director.Update, before input is read.
func (d *Director) SetScriptRunner(runner *ScriptRunner) {
	d.runner = runner
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Director.Update.
func (r *ScriptRunner) step(d *Director) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
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
		d.Snapshot(st.Label)
	case "wheel":
		d.InjectWheel(st.Delta)
	case "scroll":
		d.InjectScroll(st.Delta, st.Frames)
	case "interact":
		d.InjectInteract()
	case "hold":
		d.InjectHold(st.Frames)
	case "move":
		movePosition(d.position, Vec3{st.X, st.Y, st.Z})
	case "resume":
		d.scroll.Resume()
	case "reset":
		d.Reset()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}

// movePosition jumps providers that support it to p.
func movePosition(pos WorldPositionProvider, p Vec3) {
	switch v := pos.(type) {
	case *CursorTracker:
		v.Teleport(p)
	case *StaticPosition:
		v.P = p
	}
}
