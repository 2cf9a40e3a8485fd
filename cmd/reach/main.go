// Command reach drives the worked examples of spec.md §8 from the
// command line: orbit computes and prints an orbit's final bounding
// box, verify runs the chain-reach safety verifier on the attractor
// example, and plot renders an orbit's reach tube to an HTML chart.
// Dispatch style follows cmd/ntrucli/main.go: a flag.NewFlagSet per
// subcommand, switch on os.Args[1].
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ariadne/analyser"
	"ariadne/canvas"
	"ariadne/enclosure"
	"ariadne/evolver"
	"ariadne/function"
	"ariadne/grid"
	"ariadne/integrator"
	"ariadne/interval"
	"ariadne/numeric"
)

const prec = 53

func usage() {
	fmt.Println(`usage: reach <orbit|verify|plot> [options]

Subcommands:
  orbit    Compute an orbit for one of the built-in presets and print
           the final bounding box.
           Flags:
             -preset <linear2d|vanderpol|attractor>  (default: linear2d)
             -time   <float>                          time bound (0 = preset default)

  verify   Run the attractor worked example's safety verification and
           print safe|unsafe|indeterminate.

  plot     Compute an orbit and write its reach tube to an HTML chart.
           Flags:
             -preset <linear2d|vanderpol|attractor>  (default: linear2d)
             -time   <float>                          time bound (0 = preset default)
             -out    <path>                           output HTML path (default: orbit.html)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "orbit":
		runOrbit(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "plot":
		runPlot(os.Args[2:])
	default:
		usage()
	}
}

// loadPreset resolves a preset name into its vector field, initial box,
// integrator configuration, and default time bound (spec.md §8's
// worked examples 1-3).
func loadPreset(name string) (f *function.Function, box interval.Box, cfg integrator.Config, defaultTime float64, err error) {
	switch name {
	case "", "linear2d":
		f, box, cfg = integrator.PresetLinear2D(prec)
		return f, box, cfg, 6.28318530718, nil
	case "vanderpol":
		f, box, cfg = integrator.PresetVanDerPol(prec)
		return f, box, cfg, 6.0, nil
	case "attractor":
		f, box, cfg = integrator.PresetAttractor(prec)
		return f, box, cfg, 52.25, nil
	default:
		return nil, nil, integrator.Config{}, 0, fmt.Errorf("unknown preset %q", name)
	}
}

func newEvolver(cfg integrator.Config) *evolver.VectorFieldEvolver {
	return evolver.New(integrator.NewSeriesIntegrator(cfg), evolver.Config{Prec: prec, MaximumStepSize: 0.25})
}

func runOrbit(args []string) {
	fs := flag.NewFlagSet("orbit", flag.ExitOnError)
	preset := fs.String("preset", "linear2d", "preset: linear2d|vanderpol|attractor")
	timeFlag := fs.Float64("time", 0, "time bound (0 = preset default)")
	fs.Parse(args)

	f, box, cfg, defaultTime, err := loadPreset(*preset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach orbit:", err)
		os.Exit(1)
	}
	t := *timeFlag
	if t == 0 {
		t = defaultTime
	}

	ev := newEvolver(cfg)
	x0 := enclosure.FromBox(box, nil, prec)
	orbit, err := ev.Orbit(context.Background(), f, x0, numeric.FromFloat64(t, prec))
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach orbit:", err)
		os.Exit(1)
	}
	for _, fin := range orbit.Final {
		fmt.Println(fin.BoundingBox())
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.Parse(args)

	f, box, cfg, _, err := loadPreset("attractor")
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach verify:", err)
		os.Exit(1)
	}

	ev := newEvolver(cfg)
	an := analyser.New(ev, analyser.Config{Prec: prec, LockToGridTime: 1.0, MaximumGridDepth: 10})

	initial := grid.NewPaving(2, 3, prec)
	initial.AdjoinOuterApproximation(box, 10, numeric.FromFloat64(1e-6, prec))

	safeBox := interval.Box{interval.FromFloat64(-1, 4, prec), interval.FromFloat64(-4, 6, prec)}
	safeSet := grid.NewPaving(2, 3, prec)
	safeSet.AdjoinOuterApproximation(safeBox, 10, numeric.FromFloat64(1e-6, prec))

	verdict, _, err := an.VerifySafety(context.Background(), f, initial, safeSet)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach verify:", err)
		os.Exit(1)
	}
	fmt.Println(verdict)
}

func runPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	preset := fs.String("preset", "linear2d", "preset: linear2d|vanderpol|attractor")
	timeFlag := fs.Float64("time", 0, "time bound (0 = preset default)")
	out := fs.String("out", "orbit.html", "output HTML path")
	fs.Parse(args)

	f, box, cfg, defaultTime, err := loadPreset(*preset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach plot:", err)
		os.Exit(1)
	}
	t := *timeFlag
	if t == 0 {
		t = defaultTime
	}

	ev := newEvolver(cfg)
	x0 := enclosure.FromBox(box, nil, prec)
	orbit, err := ev.Orbit(context.Background(), f, x0, numeric.FromFloat64(t, prec))
	if err != nil {
		fmt.Fprintln(os.Stderr, "reach plot:", err)
		os.Exit(1)
	}

	c := canvas.NewEChartsCanvas(fmt.Sprintf("%s reach set", *preset))
	for _, e := range orbit.Reach {
		e.Draw(c)
	}
	for _, e := range orbit.Final {
		e.Draw(c)
	}
	if err := c.Write(*out); err != nil {
		fmt.Fprintln(os.Stderr, "reach plot:", err)
		os.Exit(1)
	}
	fmt.Println("wrote", *out)
}
