// Package main benchmarks the analytic timing-Jacobian computation and
// records its accuracy against finite differences as JSON, one record
// per gait file, for tracking across commits.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kinodyn/gaitopt-research/internal/config"
)

var (
	gaitDir = flag.String("gaits", "gaits", "directory of gait YAML files")
	outPath = flag.String("out", "bench_results.json", "output JSON file")
	samples = flag.Int("samples", 50, "query times per foot")
)

// Result is one benchmark record.
type Result struct {
	Timestamp   string  `json:"timestamp"`
	GoVersion   string  `json:"go_version"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	Gait        string  `json:"gait"`
	Feet        int     `json:"feet"`
	Phases      int     `json:"phases"`
	Evaluations int     `json:"evaluations"`
	AnalyticNs  int64   `json:"analytic_ns_per_eval"`
	MaxFDError  float64 `json:"max_fd_error"`
	HorizonSec  float64 `json:"horizon_sec"`
}

func benchGait(path string) (*Result, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	motions, schedules, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Gait:      filepath.Base(path),
		Feet:      motions.Count(),
	}
	for _, cs := range schedules {
		res.Phases += cs.PhaseCount()
	}
	res.HorizonSec = schedules[0].TotalTime()

	const h = 1e-6
	var analytic time.Duration

	for _, ee := range motions.IDs() {
		m := motions.At(ee)
		cs := m.Schedule()
		x0 := cs.Values()

		for k := 1; k < *samples; k++ {
			tq := m.TotalTime() * float64(k) / float64(*samples)
			cs.SetValues(x0)

			start := time.Now()
			jac := m.TimingJacobian(tq)
			analytic += time.Since(start)
			res.Evaluations++

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
					if e := math.Abs(jac.At(d, col) - fd[d]); e > res.MaxFDError {
						res.MaxFDError = e
					}
				}
			}
		}
		cs.SetValues(x0)
	}

	if res.Evaluations > 0 {
		res.AnalyticNs = analytic.Nanoseconds() / int64(res.Evaluations)
	}
	return res, nil
}

func main() {
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*gaitDir, "*.yaml"))
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatalf("no gait files in %s (run tools/gen_gaits first)", *gaitDir)
	}

	var results []*Result
	for _, p := range paths {
		res, err := benchGait(p)
		if err != nil {
			log.Fatalf("%s: %v", p, err)
		}
		results = append(results, res)
		fmt.Printf("%-24s feet=%d phases=%d  %6d ns/eval  maxFDerr=%.2e\n",
			res.Gait, res.Feet, res.Phases, res.AnalyticNs, res.MaxFDError)
	}

	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s (%d records)\n", *outPath, len(results))
}
