// Command gaitvis provides a GUI visualization of gait phase schedules
// and foot trajectories.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/kinodyn/gaitopt-research/internal/config"
	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/gait"
	"github.com/kinodyn/gaitopt-research/internal/vis"
)

var configPath = flag.String("config", "", "gait YAML file (default: built-in walk)")

func main() {
	flag.Parse()

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
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Gait Visualizer"),
			app.Size(unit.Dp(1100), unit.Dp(700)),
		)

		application := vis.NewApp(motions, schedules)
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
