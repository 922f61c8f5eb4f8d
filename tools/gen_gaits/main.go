// Package main generates YAML gait descriptions for standard quadruped
// footfall patterns, for use with cmd/gaitopt and cmd/gaitvis.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kinodyn/gaitopt-research/internal/config"
	"github.com/kinodyn/gaitopt-research/internal/core"
)

var (
	pattern   = flag.String("pattern", "trot", "footfall pattern: walk, trot, pace, bound")
	steps     = flag.Int("steps", 2, "number of steps per foot")
	stride    = flag.Float64("stride", 0.2, "forward distance per step (m)")
	swingDur  = flag.Float64("swing", 0.3, "swing phase duration (s)")
	stanceDur = flag.Float64("stance", 0.3, "final rest duration (s)")
	lift      = flag.Float64("lift", 0.05, "swing apex height (m)")
	outDir    = flag.String("out", "gaits", "output directory")
)

// stanceWidth is the lateral distance of the feet from the body center.
const stanceWidth = 0.2

// footPrint is the nominal position of each foot under a standing robot.
var footPrint = map[core.QuadFoot][2]float64{
	core.QuadLH: {-0.3, stanceWidth},
	core.QuadLF: {0.3, stanceWidth},
	core.QuadRH: {-0.3, -stanceWidth},
	core.QuadRF: {0.3, -stanceWidth},
}

// swingOrder returns, per foot, the slot within a step window in which
// that foot swings, and the number of slots.
func swingOrder(pattern string) (map[core.QuadFoot]int, int, error) {
	switch pattern {
	case "walk":
		// One foot at a time.
		return map[core.QuadFoot]int{
			core.QuadLH: 0, core.QuadLF: 1, core.QuadRH: 2, core.QuadRF: 3,
		}, 4, nil
	case "trot":
		// Diagonal pairs.
		return map[core.QuadFoot]int{
			core.QuadLF: 0, core.QuadRH: 0, core.QuadRF: 1, core.QuadLH: 1,
		}, 2, nil
	case "pace":
		// Lateral pairs.
		return map[core.QuadFoot]int{
			core.QuadLF: 0, core.QuadLH: 0, core.QuadRF: 1, core.QuadRH: 1,
		}, 2, nil
	case "bound":
		// Front pair then hind pair.
		return map[core.QuadFoot]int{
			core.QuadLF: 0, core.QuadRF: 0, core.QuadLH: 1, core.QuadRH: 1,
		}, 2, nil
	}
	return nil, 0, fmt.Errorf("unknown pattern %q", pattern)
}

func buildGait(pattern string, steps int) (*config.GaitConfig, error) {
	order, slots, err := swingOrder(pattern)
	if err != nil {
		return nil, err
	}

	cfg := &config.GaitConfig{
		Version:    1,
		Morphology: "quad",
	}
	cfg.Bounds.Min = *swingDur / 3
	cfg.Bounds.Max = 3 * *swingDur * float64(slots)

	for _, foot := range []core.QuadFoot{core.QuadLH, core.QuadLF, core.QuadRH, core.QuadRF} {
		slot := order[foot]
		fp := footPrint[foot]
		fc := config.FootConfig{
			Foot:    foot.String(),
			Initial: [3]float64{fp[0], fp[1], 0},
		}

		// Wait for this foot's slot within the first step window.
		if slot > 0 {
			fc.Phases = append(fc.Phases, config.PhaseConfig{
				Type:     "stance",
				Duration: float64(slot) * *swingDur,
			})
		}

		x := fp[0]
		for s := 0; s < steps; s++ {
			x += *stride
			fc.Phases = append(fc.Phases, config.PhaseConfig{
				Type:     "swing",
				Duration: *swingDur,
				Goal:     [3]float64{x, fp[1], 0},
				Lift:     *lift,
			})
			// Stand while the other slots take their turn; after the
			// last step only pad out the remainder of the window.
			hold := float64(slots-1) * *swingDur
			if s == steps-1 {
				hold = float64(slots-1-slot) * *swingDur
			}
			if hold > 0 {
				fc.Phases = append(fc.Phases, config.PhaseConfig{
					Type:     "stance",
					Duration: hold,
				})
			}
		}

		// Shared rest at the end keeps every foot's total identical.
		fc.Phases = append(fc.Phases, config.PhaseConfig{
			Type:     "stance",
			Duration: *stanceDur,
		})

		cfg.Feet = append(cfg.Feet, fc)
	}

	return cfg, nil
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg, err := buildGait(*pattern, *steps)
	if err != nil {
		log.Fatal(err)
	}

	path := filepath.Join(*outDir, fmt.Sprintf("%s_%dstep.yaml", *pattern, *steps))
	if err := cfg.Save(path); err != nil {
		log.Fatal(err)
	}

	total := 0.0
	for _, p := range cfg.Feet[0].Phases {
		total += p.Duration
	}
	fmt.Printf("Wrote %s: %d feet, %d steps, horizon %.2fs\n",
		path, len(cfg.Feet), *steps, total)
}
