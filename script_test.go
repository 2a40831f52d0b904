package backdrop

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(`
steps:
  - {action: move, x: 10, y: 20}
  - {action: wait, frames: 3}
  - {action: resize, width: 640, height: 480}
  - {action: screenshot, label: done}
`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(s.steps))
	}
	if s.steps[0].X != 10 || s.steps[2].Width != 640 || s.steps[3].Label != "done" {
		t.Errorf("steps = %+v", s.steps)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps":[{"action":"move","x":1,"y":2}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.steps) != 1 || s.steps[0].Y != 2 {
		t.Errorf("steps = %+v", s.steps)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"malformed", "steps: [", "parse script"},
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps:\n  - {action: jump}", `unknown action "jump"`},
		{"bad resize", "steps:\n  - {action: resize, width: 0, height: 10}", "positive width and height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScriptDrivesRenderer(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	s, err := LoadScript([]byte(`
steps:
  - {action: move, x: 800, y: 600}
  - {action: wait, frames: 2}
  - {action: resize, width: 600, height: 600}
`))
	if err != nil {
		t.Fatal(err)
	}
	r.SetScript(s)

	// Frame 1: move is queued and consumed in the same frame.
	host.Tick()
	if p := r.Pointer(); p.X != 20 || p.Y != 15 {
		t.Errorf("pointer after frame 1 = %+v", p)
	}
	// Frames 2-3: wait.
	host.Tick()
	host.Tick()
	if w, _ := r.Surface().Size(); w != 800 {
		t.Errorf("resize applied too early: width %d", w)
	}
	// Frame 4: resize.
	host.Tick()
	if w, h := r.Surface().Size(); w != 600 || h != 600 {
		t.Errorf("surface = %dx%d, want 600x600", w, h)
	}
	if s.Done() {
		t.Error("script done before its last injection was consumed")
	}
	host.Tick()
	if !s.Done() {
		t.Error("script should be done")
	}
}
