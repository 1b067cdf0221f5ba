// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandel"
)

// escapeShaderSource evaluates one pixel per fragment. It follows the
// same mapping and coloring as mandel.Evaluate, in float32.
var escapeShaderSource = []byte(`//kage:unit pixels

package main

const HardCap = 10000

var Resolution vec2
var Center vec2
var Zoom float
var MaxIterations int
var Color1 vec3
var Color2 vec3
var Color3 vec3

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	p := dstPos.xy - imageDstOrigin()
	nx := p.x/Resolution.x - 0.5
	ny := 0.5 - p.y/Resolution.y
	aspect := Resolution.x / Resolution.y
	c := vec2(nx*aspect*Zoom+Center.x, ny*Zoom+Center.y)

	z := vec2(0)
	n := 0
	for i := 0; i < HardCap; i++ {
		if i >= MaxIterations {
			break
		}
		if length(z) > 2.0 {
			break
		}
		z = vec2(z.x*z.x-z.y*z.y+c.x, 2.0*z.x*z.y+c.y)
		n++
	}

	m := float(n) / float(MaxIterations)
	col := mix(Color1, Color2, m)
	col = mix(col, Color3, sqrt(m))
	return vec4(col, 1)
}
`)

// compileShader builds the Kage program.
func compileShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(escapeShaderSource)
	if err != nil {
		return nil, &mandel.ShaderBuildError{Stage: "kage", Log: err.Error()}
	}
	return s, nil
}

// shaderUniforms converts render parameters into Kage uniform values.
func shaderUniforms(p mandel.RenderParameters) map[string]any {
	return map[string]any{
		"Resolution":    []float32{float32(p.Geometry.Width), float32(p.Geometry.Height)},
		"Center":        []float32{float32(p.View.CenterReal), float32(p.View.CenterImag)},
		"Zoom":          float32(p.View.Zoom),
		"MaxIterations": int32(p.MaxIterations), //nolint:gosec // clamped to [1, 10000]
		"Color1":        colorUniform(p.Stops[0]),
		"Color2":        colorUniform(p.Stops[1]),
		"Color3":        colorUniform(p.Stops[2]),
	}
}

func colorUniform(c mandel.Color) []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B)}
}
