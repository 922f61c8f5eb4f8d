package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

const tol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tol
}

const trotYAML = `version: 1
morphology: quad
duration_bounds:
  min: 0.1
  max: 1.0
feet:
  - foot: LH
    initial: [-0.3, 0.2, 0.0]
    phases:
      - {type: stance, duration: 0.4}
      - {type: swing, duration: 0.4, goal: [-0.1, 0.2, 0.0]}
      - {type: stance, duration: 0.4}
  - foot: LF
    initial: [0.3, 0.2, 0.0]
    phases:
      - {type: swing, duration: 0.4, goal: [0.5, 0.2, 0.0], lift: 0.06}
      - {type: stance, duration: 0.8}
  - foot: RH
    initial: [-0.3, -0.2, 0.0]
    phases:
      - {type: swing, duration: 0.4, goal: [-0.1, -0.2, 0.0]}
      - {type: stance, duration: 0.8}
  - foot: RF
    initial: [0.3, -0.2, 0.0]
    phases:
      - {type: stance, duration: 0.4}
      - {type: swing, duration: 0.4, goal: [0.5, -0.2, 0.0]}
      - {type: stance, duration: 0.4}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gait.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndBuild(t *testing.T) {
	cfg, err := Load(writeConfig(t, trotYAML))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Morphology != "quad" || len(cfg.Feet) != 4 {
		t.Fatalf("morphology=%s feet=%d, want quad/4", cfg.Morphology, len(cfg.Feet))
	}

	motions, schedules, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(schedules) != 4 {
		t.Fatalf("schedules = %d, want 4", len(schedules))
	}

	for _, cs := range schedules {
		if !almostEqual(cs.TotalTime(), 1.2) {
			t.Errorf("%s total time = %v, want 1.2", cs.Name(), cs.TotalTime())
		}
	}

	for _, ee := range motions.IDs() {
		m := motions.At(ee)
		if m == nil {
			t.Fatalf("no motion for %v", ee)
		}
		if m.Schedule() == nil {
			t.Errorf("motion %v not bound to a schedule", ee)
		}
		if m.FreeContactCount() != 1 {
			t.Errorf("motion %v free contacts = %d, want 1", ee, m.FreeContactCount())
		}
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong version", "version: 2\nmorphology: quad\nfeet: [{foot: LH, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}]"},
		{"unknown morphology", "version: 1\nmorphology: hexapod\nfeet: [{foot: LH, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}]"},
		{"unknown foot", "version: 1\nmorphology: biped\nfeet: [{foot: LH, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}]"},
		{"bad phase type", "version: 1\nmorphology: biped\nfeet: [{foot: L, phases: [{type: hop, duration: 1}, {type: stance, duration: 1}]}]"},
		{"no feet", "version: 1\nmorphology: quad\nfeet: []"},
		{"single phase", "version: 1\nmorphology: biped\nfeet: [{foot: L, phases: [{type: stance, duration: 1}]}]"},
		{"missing feet", "version: 1\nmorphology: quad\nfeet: [{foot: LF, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}]"},
		{"duplicate foot", "version: 1\nmorphology: biped\nfeet: [{foot: L, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}, {foot: L, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}]"},
		{"unequal horizons", "version: 1\nmorphology: biped\nfeet: [{foot: L, phases: [{type: stance, duration: 1}, {type: stance, duration: 1}]}, {foot: R, phases: [{type: stance, duration: 1}, {type: stance, duration: 2}]}]"},
	}

	for _, tt := range tests {
		if _, err := Load(writeConfig(t, tt.content)); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Load(writeConfig(t, trotYAML))
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.Save(out); err != nil {
		t.Fatal(err)
	}

	again, err := Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Feet) != len(cfg.Feet) || again.Morphology != cfg.Morphology {
		t.Errorf("round trip changed config: %+v", again)
	}
}
