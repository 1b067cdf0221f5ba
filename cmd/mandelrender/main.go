// Command mandelrender renders one Mandelbrot frame to a PNG file.
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
	_ "github.com/gogpu/mandel/gpu" // registers "gpu"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "mandel.png", "output file")
		device  = flag.String("device", "gpu", "evaluation device ("+strings.Join(mandel.Devices(), ", ")+")")
		iter    = flag.Int("iter", mandel.DefaultMaxIterations, "maximum iterations per pixel")
		preset  = flag.String("preset", mandel.DefaultPalette().Name, "color preset ("+strings.Join(mandel.PresetNames(), ", ")+")")
		colors  = flag.String("colors", "", "three comma-separated hex colors, overrides -preset")
		centerX = flag.Float64("center-x", mandel.DefaultCenterReal, "real part of the view center")
		centerY = flag.Float64("center-y", mandel.DefaultCenterImag, "imaginary part of the view center")
		zoom    = flag.Float64("zoom", mandel.DefaultZoom, "view height in complex units")
		wheel   = flag.Float64("wheel", 0, "wheel delta applied after setup (100 per notch, positive zooms in)")
		ss      = flag.Int("ss", 1, "supersampling factor per axis (1-4)")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	stops, err := resolveStops(*preset, *colors)
	if err != nil {
		log.Fatalf("Invalid colors: %v", err)
	}

	ctrl := mandel.NewController(
		mandel.WithGeometry(*width, *height),
		mandel.WithView(mandel.ViewState{CenterReal: *centerX, CenterImag: *centerY, Zoom: *zoom}),
		mandel.WithMaxIterations(*iter),
		mandel.WithColorStops(stops),
	)
	if *wheel != 0 {
		ctrl.Wheel(*wheel)
	}

	dev, err := mandel.OpenDevice(*device)
	if err != nil {
		if errors.Is(err, mandel.ErrCapabilityUnavailable) {
			fmt.Fprintf(os.Stderr, "mandelrender: no usable %q device on this system: %v\n", *device, err)
			os.Exit(1)
		}
		log.Fatalf("Failed to open device: %v", err)
	}
	defer mandel.CloseDevice(dev)

	r := mandel.NewRenderer(dev, mandel.WithSupersample(*ss))
	frame, err := r.Render(ctrl.Params())
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := frame.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	p := ctrl.Params()
	log.Printf("Frame saved to %s (%dx%d, %d iterations, device %s)\n",
		*output, frame.Width(), frame.Height(), p.MaxIterations, dev.Name())
}

// resolveStops returns the stops named by preset, or the explicit list in
// colors when it is not empty.
func resolveStops(preset, colors string) ([3]mandel.Color, error) {
	if colors == "" {
		p, err := mandel.PresetByName(preset)
		if err != nil {
			return [3]mandel.Color{}, err
		}
		return p.Stops, nil
	}

	parts := strings.Split(colors, ",")
	if len(parts) != 3 {
		return [3]mandel.Color{}, fmt.Errorf("want 3 colors, got %d", len(parts))
	}
	var stops [3]mandel.Color
	for i, s := range parts {
		c, err := mandel.ParseHex(strings.TrimSpace(s))
		if err != nil {
			return [3]mandel.Color{}, err
		}
		stops[i] = c
	}
	return stops, nil
}
