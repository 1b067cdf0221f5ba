// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewer

import (
	"strings"
	"testing"

	"github.com/gogpu/mandel"
)

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		yoff float64
		want float64
	}{
		{1, -100},
		{-1, 100},
		{0.5, -50},
	}
	for _, tt := range tests {
		if got := wheelDelta(tt.yoff); got != tt.want {
			t.Errorf("wheelDelta(%v) = %v, want %v", tt.yoff, got, tt.want)
		}
	}
}

func TestWheelDirection(t *testing.T) {
	ctrl := mandel.NewController()
	before := ctrl.View().Zoom
	ctrl.Wheel(wheelDelta(-1))
	if after := ctrl.View().Zoom; after >= before {
		t.Errorf("zoom after wheel toward user = %v, want < %v", after, before)
	}
	ctrl.Wheel(wheelDelta(1))
	ctrl.Wheel(wheelDelta(1))
	if after := ctrl.View().Zoom; after <= before {
		t.Errorf("zoom after wheel away = %v, want > %v", after, before)
	}
}

func TestShaderUniforms(t *testing.T) {
	p := mandel.RenderParameters{
		View:          mandel.ViewState{CenterReal: -0.5, CenterImag: 0.25, Zoom: 4},
		Geometry:      mandel.Geometry{Width: 640, Height: 480},
		MaxIterations: 500,
		Stops:         [3]mandel.Color{mandel.RGB(1, 0, 0), mandel.RGB(0, 1, 0), mandel.RGB(0, 0, 1)},
	}
	u := shaderUniforms(p)

	res, ok := u["Resolution"].([]float32)
	if !ok || len(res) != 2 || res[0] != 640 || res[1] != 480 {
		t.Errorf("Resolution = %v, want [640 480]", u["Resolution"])
	}
	if got, ok := u["MaxIterations"].(int32); !ok || got != 500 {
		t.Errorf("MaxIterations = %v, want int32 500", u["MaxIterations"])
	}
	if got, ok := u["Zoom"].(float32); !ok || got != 4 {
		t.Errorf("Zoom = %v, want float32 4", u["Zoom"])
	}
	c3, ok := u["Color3"].([]float32)
	if !ok || len(c3) != 3 || c3[2] != 1 {
		t.Errorf("Color3 = %v, want [0 0 1]", u["Color3"])
	}
}

func TestShaderSourceUsesHardCap(t *testing.T) {
	src := string(escapeShaderSource)
	if !strings.HasPrefix(src, "//kage:unit pixels") {
		t.Error("shader does not declare pixel units")
	}
	if !strings.Contains(src, "const HardCap = 10000") {
		t.Error("shader loop bound does not match mandel.HardCap")
	}
}

func TestCompileShader(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("ebiten cannot initialise here: %v", r)
		}
	}()

	s, err := compileShader()
	if err != nil {
		t.Fatalf("compileShader: %v", err)
	}
	if s == nil {
		t.Fatal("compileShader returned a nil shader")
	}
}

func TestOverlayText(t *testing.T) {
	ctrl := mandel.NewController(mandel.WithGeometry(320, 200))
	text := overlayText(ctrl.Params(), ctrl.Gesture(), 60)

	for _, want := range []string{
		"iterations: 500",
		mandel.DefaultPalette().Stops[0].Hex(),
		"320x200",
		"idle",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay missing %q:\n%s", want, text)
		}
	}
}
