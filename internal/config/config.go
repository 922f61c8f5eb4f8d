// Package config loads gait descriptions from YAML files.
package config

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/gait"
)

// PhaseConfig describes one stance or swing interval of a foot.
type PhaseConfig struct {
	Type     string     `yaml:"type"` // "stance" or "swing"
	Duration float64    `yaml:"duration"`
	Goal     [3]float64 `yaml:"goal,omitempty"` // swing only
	Lift     float64    `yaml:"lift,omitempty"` // swing only, 0 = default
}

// FootConfig describes the full phase sequence of one foot.
type FootConfig struct {
	Foot    string        `yaml:"foot"` // morphology name, e.g. "LH" or "L"
	Initial [3]float64    `yaml:"initial"`
	Phases  []PhaseConfig `yaml:"phases"`
}

// GaitConfig is the root of a gait description file.
type GaitConfig struct {
	Version    int    `yaml:"version"`
	Morphology string `yaml:"morphology"` // "biped" or "quad"
	Bounds     struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	} `yaml:"duration_bounds"`
	Feet []FootConfig `yaml:"feet"`
}

// Load reads and validates a gait description.
func Load(path string) (*GaitConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg GaitConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported gait file version: %d", cfg.Version)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes a gait description to path.
func (c *GaitConfig) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (c *GaitConfig) validate() error {
	if len(c.Feet) == 0 {
		return fmt.Errorf("no feet configured")
	}
	seen := make(map[core.EndeffectorID]bool)
	horizon := 0.0
	for i, f := range c.Feet {
		ee, err := c.footID(f.Foot)
		if err != nil {
			return err
		}
		if seen[ee] {
			return fmt.Errorf("foot %s listed twice", f.Foot)
		}
		seen[ee] = true
		if len(f.Phases) < 2 {
			return fmt.Errorf("foot %s: need at least two phases", f.Foot)
		}
		total := 0.0
		for _, p := range f.Phases {
			switch p.Type {
			case "stance", "swing":
			default:
				return fmt.Errorf("foot %s: unknown phase type %q", f.Foot, p.Type)
			}
			if p.Duration <= 0 {
				return fmt.Errorf("foot %s: non-positive duration %v", f.Foot, p.Duration)
			}
			total += p.Duration
		}
		// All feet share one horizon; a shorter foot would leave the
		// tail of the gait undefined for it.
		if i == 0 {
			horizon = total
		} else if math.Abs(total-horizon) > 1e-9 {
			return fmt.Errorf("foot %s: durations sum to %v, want horizon %v", f.Foot, total, horizon)
		}
	}
	// Every morphology foot must be present, or Build would hand out a
	// container with unset slots.
	if len(seen) != c.FootCount() {
		return fmt.Errorf("%s gait needs %d feet, got %d", c.Morphology, c.FootCount(), len(seen))
	}
	return nil
}

// footID resolves a morphology foot name to the generic endeffector ID.
func (c *GaitConfig) footID(name string) (core.EndeffectorID, error) {
	switch c.Morphology {
	case "biped":
		for ee, foot := range core.BipedMap {
			if foot.String() == name {
				return ee, nil
			}
		}
	case "quad":
		for ee, foot := range core.QuadMap {
			if foot.String() == name {
				return ee, nil
			}
		}
	default:
		return 0, fmt.Errorf("unknown morphology %q", c.Morphology)
	}
	return 0, fmt.Errorf("unknown %s foot %q", c.Morphology, name)
}

// FootCount returns the number of endeffectors for the morphology.
func (c *GaitConfig) FootCount() int {
	if c.Morphology == "biped" {
		return len(core.BipedMap)
	}
	return len(core.QuadMap)
}

// Build constructs one EndeffectorMotion per configured foot, each bound
// to its own ContactSchedule. The schedules are returned in endeffector
// order for handing to the solver as variable sets.
func (c *GaitConfig) Build() (core.Endeffectors[*gait.EndeffectorMotion], []*gait.ContactSchedule, error) {
	motions := core.NewEndeffectors[*gait.EndeffectorMotion](c.FootCount())
	schedules := make([]*gait.ContactSchedule, 0, len(c.Feet))

	for _, f := range c.Feet {
		ee, err := c.footID(f.Foot)
		if err != nil {
			return motions, nil, err
		}

		m := gait.NewEndeffectorMotion()
		m.SetInitialPos(r3.Vec{X: f.Initial[0], Y: f.Initial[1], Z: f.Initial[2]})

		timings := make([]float64, 0, len(f.Phases))
		for _, p := range f.Phases {
			timings = append(timings, p.Duration)
			if p.Type == "stance" {
				m.AddStancePhase(p.Duration)
				continue
			}
			goal := r3.Vec{X: p.Goal[0], Y: p.Goal[1], Z: p.Goal[2]}
			lift := p.Lift
			if lift == 0 {
				lift = gait.DefaultLiftHeight
			}
			m.AddSwingPhaseLifted(p.Duration, goal, lift)
		}

		cs := gait.NewContactSchedule(ee, timings, c.Bounds.Min, c.Bounds.Max)
		m.BindSchedule(cs)

		motions.Set(ee, m)
		schedules = append(schedules, cs)
	}

	return motions, schedules, nil
}
