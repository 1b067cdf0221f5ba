// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewer is an interactive Mandelbrot window built on ebiten.
//
// The escape-time loop runs per pixel in a Kage fragment shader, so every
// frame is evaluated on the GPU. Input is polled once per tick and fed to a
// mandel.Controller:
//
//   - left mouse drag and one-finger touch drag pan the view
//   - two-finger pinch zooms by the ratio of finger distances
//   - the wheel zooms by 1.1 per 100 wheel units
//
// Keys: Up/Down change the iteration depth, P cycles color presets,
// N draws random colors, R resets the view, H toggles the settings panel,
// Esc quits.
//
// A frame is redrawn only after the controller has issued a new render
// request. Window creation failures are reported as
// mandel.ErrCapabilityUnavailable; a Kage compile failure as a
// *mandel.ShaderBuildError.
package viewer
