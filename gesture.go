package mandel

import (
	"math"
	"slices"
)

// GestureState is the state of the pointer/touch gesture machine.
//
// Dragging and Pinching are mutually exclusive: a second contact cancels a
// drag in progress.
type GestureState int

const (
	// GestureIdle means no gesture is in progress.
	GestureIdle GestureState = iota

	// GestureDragging means one contact is panning the view.
	GestureDragging

	// GesturePinching means two contacts are zooming the view.
	GesturePinching
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GesturePinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// MousePointer is the pointer id used for the mouse. Touch contacts use
// their platform ids, which are never negative. The mouse only drags: it is
// tracked apart from touch contacts and never forms part of a pinch.
const MousePointer = -1

// PinchEpsilon is the smallest initial contact distance, in device pixels,
// that yields a usable pinch ratio. Below it the ratio is treated as 1.
const PinchEpsilon = 1e-3

type contact struct {
	id   int
	x, y float64
}

type actionKind int

const (
	actionNone actionKind = iota
	actionPan
	actionPinch
)

// gestureAction tells the controller what a transition asks for.
type gestureAction struct {
	kind     actionKind
	dx, dy   float64 // actionPan: device-pixel delta
	ratio    float64 // actionPinch: current / initial distance
	baseline float64 // actionPinch: zoom when the pinch started
}

// gestureMachine implements the transition table:
//
//	Idle      + down (1 contact)          -> Dragging, record anchor
//	Idle      + down (>=2 contacts)       -> Pinching, record distance and zoom
//	Dragging  + down (>=2 contacts)       -> Pinching, drag cancelled
//	Dragging  + move (dragged contact)    -> Dragging, pan by delta, move anchor
//	Dragging  + up   (dragged contact)    -> Idle
//	Pinching  + move (pinch contact)      -> Pinching, zoom = baseline / ratio
//	Pinching  + up   (<2 contacts remain) -> Idle, no drag resume
//	Pinching  + up   (pair broken, >=2)   -> Pinching, rebased on new pair
//	Idle      + move                      -> Idle, ignored
//
// Contact counts are touch contacts only. A mouse press starts a drag when
// idle and is otherwise recorded without changing state.
//
// It holds no view state; the controller applies the returned actions.
type gestureMachine struct {
	state    GestureState
	contacts []contact // touch contacts

	mouseDown bool

	dragID       int
	lastX, lastY float64

	pinchA, pinchB  int
	initialDistance float64
	baselineZoom    float64
}

func (m *gestureMachine) find(id int) int {
	return slices.IndexFunc(m.contacts, func(c contact) bool { return c.id == id })
}

func (m *gestureMachine) position(id int) (x, y float64) {
	i := m.find(id)
	return m.contacts[i].x, m.contacts[i].y
}

func (m *gestureMachine) down(id int, x, y, zoom float64) {
	if id == MousePointer {
		if m.mouseDown {
			return
		}
		m.mouseDown = true
		if m.state == GestureIdle {
			m.beginDrag(id, x, y)
		}
		return
	}

	if i := m.find(id); i >= 0 {
		m.contacts[i].x, m.contacts[i].y = x, y
	} else {
		m.contacts = append(m.contacts, contact{id: id, x: x, y: y})
	}

	switch {
	case len(m.contacts) >= 2 && m.state != GesturePinching:
		m.startPinch(zoom)
	case len(m.contacts) == 1:
		m.beginDrag(id, x, y)
	}
}

func (m *gestureMachine) beginDrag(id int, x, y float64) {
	m.state = GestureDragging
	m.dragID = id
	m.lastX, m.lastY = x, y
}

func (m *gestureMachine) move(id int, x, y float64) gestureAction {
	if id == MousePointer {
		if !m.mouseDown {
			return gestureAction{}
		}
	} else {
		i := m.find(id)
		if i < 0 {
			return gestureAction{}
		}
		m.contacts[i].x, m.contacts[i].y = x, y
	}

	switch m.state {
	case GestureDragging:
		if id != m.dragID {
			return gestureAction{}
		}
		a := gestureAction{kind: actionPan, dx: x - m.lastX, dy: y - m.lastY}
		m.lastX, m.lastY = x, y
		return a
	case GesturePinching:
		if id != m.pinchA && id != m.pinchB {
			return gestureAction{}
		}
		return gestureAction{kind: actionPinch, ratio: m.ratio(), baseline: m.baselineZoom}
	}
	return gestureAction{}
}

func (m *gestureMachine) up(id int, zoom float64) {
	if id == MousePointer {
		if !m.mouseDown {
			return
		}
		m.mouseDown = false
		if m.state == GestureDragging && m.dragID == MousePointer {
			m.state = GestureIdle
		}
		return
	}

	i := m.find(id)
	if i < 0 {
		return
	}
	m.contacts = slices.Delete(m.contacts, i, i+1)

	switch m.state {
	case GestureDragging:
		if id == m.dragID {
			m.state = GestureIdle
		}
	case GesturePinching:
		if len(m.contacts) < 2 {
			m.state = GestureIdle
			m.initialDistance = 0
			return
		}
		if id == m.pinchA || id == m.pinchB {
			m.startPinch(zoom)
		}
	}
}

// reset forgets every contact, e.g. when the surface loses focus.
func (m *gestureMachine) reset() {
	*m = gestureMachine{contacts: m.contacts[:0]}
}

func (m *gestureMachine) startPinch(zoom float64) {
	m.state = GesturePinching
	m.pinchA, m.pinchB = m.contacts[0].id, m.contacts[1].id
	m.initialDistance = m.distance()
	m.baselineZoom = zoom
}

func (m *gestureMachine) distance() float64 {
	ax, ay := m.position(m.pinchA)
	bx, by := m.position(m.pinchB)
	return math.Hypot(ax-bx, ay-by)
}

// ratio returns current / initial pinch distance, or 1 for a degenerate
// initial distance.
func (m *gestureMachine) ratio() float64 {
	if m.initialDistance < PinchEpsilon {
		return 1
	}
	return m.distance() / m.initialDistance
}
