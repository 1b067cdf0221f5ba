// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/mandel"
)

// WheelUnitsPerNotch converts ebiten wheel offsets (notches, positive away
// from the user) to browser-style deltaY units.
const WheelUnitsPerNotch = 100

// wheelDelta maps an ebiten vertical wheel offset to a Controller.Wheel delta.
// Scrolling toward the user zooms in, as in a browser.
func wheelDelta(yoff float64) float64 {
	return -yoff * WheelUnitsPerNotch
}

// input tracks pointer state between ticks so that only changes reach the
// controller.
type input struct {
	ctrl *mandel.Controller

	mouseDown bool
	mouseLast image.Point

	touches  map[ebiten.TouchID]image.Point
	touchBuf []ebiten.TouchID
}

func newInput(ctrl *mandel.Controller) *input {
	return &input{
		ctrl:    ctrl,
		touches: make(map[ebiten.TouchID]image.Point),
	}
}

// poll forwards one tick of wheel, mouse and touch input.
func (in *input) poll() {
	if _, yoff := ebiten.Wheel(); yoff != 0 {
		in.ctrl.Wheel(wheelDelta(yoff))
	}
	in.pollMouse()
	in.pollTouches()
}

func (in *input) pollMouse() {
	x, y := ebiten.CursorPosition()
	pt := image.Pt(x, y)
	g := in.ctrl.Geometry()
	inside := pt.In(image.Rect(0, 0, g.Width, g.Height))

	if !in.mouseDown {
		if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			in.mouseDown = true
			in.mouseLast = pt
			in.ctrl.PointerDown(mandel.MousePointer, float64(x), float64(y))
		}
		return
	}

	if !inside {
		// Leaving the surface ends the drag.
		in.mouseDown = false
		in.ctrl.PointerCancel(mandel.MousePointer)
		return
	}
	if pt != in.mouseLast {
		in.mouseLast = pt
		in.ctrl.PointerMove(mandel.MousePointer, float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.mouseDown = false
		in.ctrl.PointerUp(mandel.MousePointer)
	}
}

func (in *input) pollTouches() {
	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		x, y := ebiten.TouchPosition(id)
		in.touches[id] = image.Pt(x, y)
		in.ctrl.PointerDown(int(id), float64(x), float64(y))
	}

	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		last, ok := in.touches[id]
		if !ok {
			continue
		}
		x, y := ebiten.TouchPosition(id)
		if pt := image.Pt(x, y); pt != last {
			in.touches[id] = pt
			in.ctrl.PointerMove(int(id), float64(x), float64(y))
		}
	}

	in.touchBuf = inpututil.AppendJustReleasedTouchIDs(in.touchBuf[:0])
	for _, id := range in.touchBuf {
		if _, ok := in.touches[id]; !ok {
			continue
		}
		delete(in.touches, id)
		in.ctrl.PointerUp(int(id))
	}
}

// release drops every tracked contact, e.g. when the window loses focus.
func (in *input) release() {
	if in.mouseDown || len(in.touches) > 0 {
		in.mouseDown = false
		clear(in.touches)
		in.ctrl.CancelGestures()
	}
}
