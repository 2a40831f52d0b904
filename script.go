package backdrop

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// scriptFile is the top-level structure for a script document.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script sequences injected pointer moves, resizes and screenshots across
// frames for automated visual checks. Attach to a Renderer via SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) script and returns a Script ready to be
// attached to a Renderer via SetScript.
//
//	steps:
//	  - {action: move, x: 100, y: 80}
//	  - {action: wait, frames: 30}
//	  - {action: resize, width: 1024, height: 768}
//	  - {action: screenshot, label: wide}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("backdrop: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("backdrop: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "wait", "screenshot":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("backdrop: parse script: step %d: resize needs positive width and height", i)
			}
		default:
			return nil, fmt.Errorf("backdrop: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a Script to the renderer. The script advances once per
// frame, before queued injections are consumed.
func (r *Renderer) SetScript(s *Script) {
	r.script = s
}

// Done reports whether all steps in the script have been executed.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame.
func (s *Script) step(r *Renderer) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(r.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		r.Screenshot(st.Label)
	case "move":
		r.InjectPointerMove(st.X, st.Y)
	case "resize":
		r.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(r.injectQueue) == 0 {
		s.done = true
	}
}
