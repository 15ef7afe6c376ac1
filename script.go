package sprout

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned when a session script has no steps.
var ErrEmptyScript = errors.New("sprout: script has no steps")

// scriptStep represents a single action in a session script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Element string  `json:"element,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// sessionScript is the top-level JSON structure for a session script.
type sessionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptEnv resolves names used by a script and performs page side effects.
type ScriptEnv interface {
	Element(id string) *Element
	VariantFor(el *Element) *Variant
	ScrollTo(y float64)
	Snapshot(label string) error
}

// ScriptRunner sequences trigger events, scrolling and snapshots across
// frames so sessions can be driven without a pointer.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script sessionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "enter", "leave", "touch":
			if st.Element == "" {
				return nil, fmt.Errorf("parse script: step %d: %s needs an element", i, st.Action)
			}
		case "scroll", "wait", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(c *Controller, env ScriptEnv) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "enter", "leave", "touch":
		el := env.Element(st.Element)
		if el == nil {
			err = fmt.Errorf("step %d: no element %q", r.cursor-1, st.Element)
			break
		}
		switch st.Action {
		case "enter":
			c.Start(el, env.VariantFor(el))
		case "leave":
			c.Stop(el)
		case "touch":
			c.Touch(el, env.VariantFor(el))
		}
	case "scroll":
		env.ScrollTo(st.Y)
		c.Scrolled(Vec2{0, st.Y})
	case "snapshot":
		err = env.Snapshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return err
}

// Run steps the script, ticking and drawing c after every step, until the
// script is done or maxFrames have elapsed. The first step error stops it.
func (r *ScriptRunner) Run(c *Controller, env ScriptEnv, maxFrames int) (frames int, err error) {
	for !r.done && frames < maxFrames {
		if err := r.Step(c, env); err != nil {
			return frames, err
		}
		c.Update()
		c.Draw()
		frames++
	}
	return frames, nil
}
