// Command mandelview opens an interactive Mandelbrot explorer window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/viewer"
)

func main() {
	var (
		width   = flag.Int("width", 1024, "window width")
		height  = flag.Int("height", 768, "window height")
		iter    = flag.Int("iter", mandel.DefaultMaxIterations, "initial maximum iterations")
		preset  = flag.String("preset", mandel.DefaultPalette().Name, "initial color preset ("+strings.Join(mandel.PresetNames(), ", ")+")")
		keep    = flag.Bool("keep-controls", false, "keep the settings panel visible while interacting")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := mandel.PresetByName(*preset)
	if err != nil {
		log.Fatalf("Invalid preset: %v", err)
	}

	ctrl := mandel.NewController(
		mandel.WithGeometry(*width, *height),
		mandel.WithMaxIterations(*iter),
		mandel.WithColorStops(p.Stops),
		mandel.WithHideControlsOnInteract(!*keep),
	)

	v, err := viewer.New(ctrl, viewer.WithWindowSize(*width, *height), viewer.WithTitle("Mandelbrot Explorer"))
	if err != nil {
		log.Fatalf("Failed to build shader: %v", err)
	}

	if err := v.Run(); err != nil {
		if errors.Is(err, mandel.ErrCapabilityUnavailable) {
			fmt.Fprintln(os.Stderr, "mandelview: this system cannot open a graphics window:", err)
			os.Exit(1)
		}
		log.Fatalf("Viewer failed: %v", err)
	}
}
