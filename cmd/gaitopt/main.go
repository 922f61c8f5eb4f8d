// Command gaitopt runs gait-timing experiments: it builds a phase
// schedule per foot, perturbs the optimized durations the way a solver
// iterate would, and verifies the analytic timing Jacobians against
// central finite differences.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/config"
	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/gait"
	"github.com/kinodyn/gaitopt-research/internal/nlp"
)

var configPath = flag.String("config", "", "gait YAML file (default: built-in trot)")

func main() {
	flag.Parse()

	fmt.Println("=== Gait phase-timing optimization core ===")

	var (
		motions   core.Endeffectors[*gait.EndeffectorMotion]
		schedules []*gait.ContactSchedule
	)
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		motions, schedules, err = cfg.Build()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Loaded %s: %s, %d feet\n", *configPath, cfg.Morphology, len(cfg.Feet))
	} else {
		motions, schedules = builtinTrot()
		fmt.Println("Using built-in two-step trot")
	}

	printPhaseTable(motions)

	problem := buildProblem(motions, schedules)
	fmt.Printf("\nNLP surface: %d duration variables, %d constraint rows\n",
		problem.VariableRows(), problem.ConstraintRows())

	runPerturbations(problem, schedules)
	verifyJacobians(motions)
}

func printPhaseTable(motions core.Endeffectors[*gait.EndeffectorMotion]) {
	fmt.Println("\n--- Phase table ---")
	for _, ee := range motions.IDs() {
		m := motions.At(ee)
		fmt.Printf("  %s (%s):", ee, footLabel(motions, ee))

		durations := m.Schedule().Durations()
		for i := 0; i < m.PhaseCount(); i++ {
			start := m.PhaseStart(i)
			kind := "swing "
			if m.IsInContact(start) {
				kind = "stance"
			}
			fmt.Printf("  %s[%.2f,%.2f)", kind, start, start+durations[i])
		}
		fmt.Println()
	}
}

func footLabel(motions core.Endeffectors[*gait.EndeffectorMotion], ee core.EndeffectorID) string {
	switch motions.Count() {
	case len(core.QuadMap):
		return core.QuadMap[ee].String()
	case len(core.BipedMap):
		return core.BipedMap[ee].String()
	}
	return ee.String()
}

func buildProblem(motions core.Endeffectors[*gait.EndeffectorMotion], schedules []*gait.ContactSchedule) *nlp.Problem {
	problem := &nlp.Problem{}
	for _, cs := range schedules {
		problem.AddVariableSet(cs)
	}

	// Pin the final footholds to where the gait was designed to land.
	nominal := core.EndeffectorsPos{}
	nominal.SetCount(motions.Count())
	tEnd := motions.At(core.E0).TotalTime()
	for _, ee := range motions.IDs() {
		m := motions.At(ee)
		nominal.Set(ee, m.ContactPosition(m.ContactIndexAt(tEnd)))
	}
	problem.AddConstraint(gait.NewFootholdConstraint(motions, nominal, tEnd))
	return problem
}

func runPerturbations(problem *nlp.Problem, schedules []*gait.ContactSchedule) {
	fmt.Println("\n--- Duration perturbation sweep ---")
	x0 := problem.VariableValues()

	for _, scale := range []float64{0.9, 1.1, 1.0} {
		x := make([]float64, len(x0))
		for i := range x {
			x[i] = scale * x0[i]
		}
		problem.SetVariableValues(x)

		worst := 0.0
		for _, cs := range schedules {
			sum := 0.0
			for _, d := range cs.Durations() {
				sum += d
			}
			if dev := math.Abs(sum - cs.TotalTime()); dev > worst {
				worst = dev
			}
		}
		fmt.Printf("  scale %.1f: max total-time deviation %.2e\n", scale, worst)
	}
}

func verifyJacobians(motions core.Endeffectors[*gait.EndeffectorMotion]) {
	fmt.Println("\n--- Analytic vs. finite-difference timing Jacobians ---")
	const h = 1e-6

	for _, ee := range motions.IDs() {
		m := motions.At(ee)
		cs := m.Schedule()
		x0 := cs.Values()
		worst := 0.0

		samples := 20
		for k := 1; k < samples; k++ {
			tq := m.TotalTime() * float64(k) / float64(samples)

			cs.SetValues(x0)
			jac := m.TimingJacobian(tq)

			for col := 0; col < cs.Rows(); col++ {
				xp := append([]float64(nil), x0...)
				xm := append([]float64(nil), x0...)
				xp[col] += h
				xm[col] -= h

				cs.SetValues(xp)
				pp := m.State(tq).Pos
				cs.SetValues(xm)
				pm := m.State(tq).Pos

				fd := [3]float64{
					(pp.X - pm.X) / (2 * h),
					(pp.Y - pm.Y) / (2 * h),
					(pp.Z - pm.Z) / (2 * h),
				}
				for d := 0; d < 3; d++ {
					if err := math.Abs(jac.At(d, col) - fd[d]); err > worst {
						worst = err
					}
				}
			}
		}
		cs.SetValues(x0)
		fmt.Printf("  %s: max |analytic - FD| = %.2e\n", ee, worst)
	}
}

// builtinTrot builds a two-step diagonal trot without a config file.
// The first diagonal pair (LF, RH) swings immediately; the second pair
// waits one swing slot, and both finish on a common rest so every foot
// spans the same horizon.
func builtinTrot() (core.Endeffectors[*gait.EndeffectorMotion], []*gait.ContactSchedule) {
	type foot struct {
		ee      core.EndeffectorID
		x, y    float64
		delayed bool
	}
	feet := []foot{
		{core.E1, 0.3, 0.2, false},   // LF
		{core.E2, -0.3, -0.2, false}, // RH
		{core.E3, 0.3, -0.2, true},   // RF
		{core.E0, -0.3, 0.2, true},   // LH
	}

	const (
		swing  = 0.3
		stride = 0.2
		rest   = 0.3
	)

	motions := core.NewEndeffectors[*gait.EndeffectorMotion](4)
	var schedules []*gait.ContactSchedule

	for _, f := range feet {
		m := gait.NewEndeffectorMotion()
		m.SetInitialPos(r3.Vec{X: f.x, Y: f.y})

		var timings []float64
		stance := func(d float64) {
			m.AddStancePhase(d)
			timings = append(timings, d)
		}
		swingTo := func(x float64) {
			m.AddSwingPhase(swing, r3.Vec{X: x, Y: f.y})
			timings = append(timings, swing)
		}

		if f.delayed {
			stance(swing)
			swingTo(f.x + stride)
			stance(swing)
			swingTo(f.x + 2*stride)
			stance(rest)
		} else {
			swingTo(f.x + stride)
			stance(swing)
			swingTo(f.x + 2*stride)
			stance(swing + rest)
		}

		cs := gait.NewContactSchedule(f.ee, timings, swing/3, 3*swing)
		m.BindSchedule(cs)
		motions.Set(f.ee, m)
		schedules = append(schedules, cs)
	}

	return motions, schedules
}
