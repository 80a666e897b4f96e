package view

import (
	"math"
	"time"

	"github.com/sbhuiyan/kintree/pkg/layout"
)

// Gesture thresholds.
const (
	clickSlop       = 5.0  // max pointer travel for a press to count as a click
	doubleTapRadius = 30.0 // max distance between taps of a double-tap
	doubleTapWindow = 300 * time.Millisecond

	wheelZoomIn  = 1.1
	wheelZoomOut = 0.9
)

// Controller interprets pointer and touch gestures against a layout,
// owning selection, hover, and highlight state alongside the camera.
//
// All methods must be called from a single goroutine; the controller is
// designed for a UI event loop and does no locking. Time only enters
// through [Controller.Advance] and the double-tap clock, so gesture logic
// is fully deterministic under test.
type Controller struct {
	Camera *Camera

	layout    *layout.Result
	viewportW float64
	viewportH float64

	// Selection and transient chrome.
	SelectedID    string
	HoveredID     string
	HighlightedID string
	pulseElapsed  time.Duration

	// OnSelect, when set, is called with the newly selected node, or nil
	// when the selection is cleared.
	OnSelect func(*layout.PositionedNode)

	// now is the double-tap clock; replaceable in tests.
	now func() time.Time

	anim         *animation
	pendingFocus string // node to highlight when the focus transition lands

	dragging      bool
	lastX, lastY  float64
	downX, downY  float64
	lastTapAt     time.Time
	lastTapX      float64
	lastTapY      float64
	pinchDist     float64
	pinchActive   bool
	pinchCenterX  float64
	pinchCenterY  float64
}

// NewController creates a controller over a layout with a fresh camera.
func NewController(l *layout.Result) *Controller {
	return &Controller{
		Camera: NewCamera(l.Design),
		layout: l,
		now:    time.Now,
	}
}

// SetViewport records the viewport pixel size used by fit and focus math.
func (c *Controller) SetViewport(w, h float64) {
	c.viewportW = w
	c.viewportH = h
}

// SetLayout swaps the layout the controller operates on, clearing any
// node-bound transient state.
func (c *Controller) SetLayout(l *layout.Result) {
	c.layout = l
	c.SelectedID = ""
	c.HoveredID = ""
	c.HighlightedID = ""
	c.anim = nil
	c.pendingFocus = ""
}

// NodeAt hit-tests a screen point against all currently visible nodes,
// scanning in placement order. Nodes do not overlap by construction, so
// the first hit wins.
func (c *Controller) NodeAt(sx, sy float64) *layout.PositionedNode {
	wx, wy := c.Camera.ScreenToWorld(sx, sy)

	var found *layout.PositionedNode
	c.layout.Walk(func(n *layout.PositionedNode) {
		if found == nil && n.Visible && n.Contains(wx, wy) {
			found = n
		}
	})
	return found
}

// PointerDown starts a drag and feeds double-tap detection. A double-tap
// on a node triggers a focus transition.
func (c *Controller) PointerDown(x, y float64) {
	c.cancelAnimation() // manual interaction always takes priority
	c.dragging = true
	c.lastX, c.lastY = x, y
	c.downX, c.downY = x, y

	now := c.now()
	if now.Sub(c.lastTapAt) < doubleTapWindow && math.Hypot(x-c.lastTapX, y-c.lastTapY) < doubleTapRadius {
		if n := c.NodeAt(x, y); n != nil {
			c.FocusOn(n.ID)
		}
		c.lastTapAt = time.Time{}
		return
	}
	c.lastTapAt = now
	c.lastTapX, c.lastTapY = x, y
}

// PointerMove pans while dragging and updates hover otherwise.
func (c *Controller) PointerMove(x, y float64) {
	if c.dragging {
		c.Camera.Pan(x-c.lastX, y-c.lastY)
		c.lastX, c.lastY = x, y
		return
	}

	if n := c.NodeAt(x, y); n != nil {
		c.HoveredID = n.ID
	} else {
		c.HoveredID = ""
	}
}

// PointerUp ends a drag. A press that barely moved counts as a click and
// updates the selection (or clears it on empty space).
func (c *Controller) PointerUp(x, y float64) {
	if !c.dragging {
		return
	}
	c.dragging = false

	if math.Abs(x-c.downX) < clickSlop && math.Abs(y-c.downY) < clickSlop {
		if n := c.NodeAt(x, y); n != nil {
			c.selectNode(n)
		} else {
			c.ClearSelection()
		}
	}
}

// PointerLeave aborts any drag and clears hover.
func (c *Controller) PointerLeave() {
	c.dragging = false
	c.HoveredID = ""
}

// Wheel applies zoom-to-cursor: scroll down zooms out, up zooms in, and
// the world point under the cursor stays fixed on screen.
func (c *Controller) Wheel(x, y, deltaY float64) {
	c.cancelAnimation()
	factor := wheelZoomIn
	if deltaY > 0 {
		factor = wheelZoomOut
	}
	c.Camera.ZoomAt(x, y, factor)
}

// TouchMove handles two-finger pinch zoom anchored at the touch midpoint,
// scaled by the ratio of the current to previous inter-touch distance.
func (c *Controller) TouchMove(x1, y1, x2, y2 float64) {
	dist := math.Hypot(x1-x2, y1-y2)
	cx := (x1 + x2) / 2
	cy := (y1 + y2) / 2

	if c.pinchActive && c.pinchDist > 0 {
		c.cancelAnimation()
		c.Camera.ZoomAt(cx, cy, dist/c.pinchDist)
	}

	c.pinchActive = true
	c.pinchDist = dist
	c.pinchCenterX, c.pinchCenterY = cx, cy
}

// TouchEnd resets pinch tracking.
func (c *Controller) TouchEnd() {
	c.pinchActive = false
	c.pinchDist = 0
}

// ResetView starts an animated transition that fits the whole layout in
// the viewport.
func (c *Controller) ResetView() {
	c.startAnimation(Fit(c.layout.Bounds, c.viewportW, c.viewportH, c.layout.Design), "")
}

// FocusOn starts an animated transition that centers the given node at a
// comfortable zoom. When the transition lands, the node becomes selected
// and pulses briefly.
func (c *Controller) FocusOn(nodeID string) {
	n, ok := c.layout.Nodes[nodeID]
	if !ok {
		return
	}
	c.startAnimation(FocusTarget(n, c.viewportW, c.viewportH, c.layout.Design), nodeID)
}

// Advance steps animations by dt: the camera transition (if one is in
// flight) and the highlight pulse. Returns true while anything is still
// animating and another frame is needed.
func (c *Controller) Advance(dt time.Duration) bool {
	active := false
	landed := false

	if c.anim != nil {
		state, done := c.anim.step(dt)
		c.Camera.State = state
		if done {
			c.anim = nil
			if c.pendingFocus != "" {
				c.HighlightedID = c.pendingFocus
				c.pulseElapsed = 0
				landed = true
				if n, ok := c.layout.Nodes[c.pendingFocus]; ok {
					c.selectNode(n)
				}
				c.pendingFocus = ""
			}
		} else {
			active = true
		}
	}

	if c.HighlightedID != "" {
		// The landing frame starts the pulse at phase zero; time begins
		// accruing on the next frame.
		if !landed {
			c.pulseElapsed += dt
		}
		if c.pulseElapsed >= PulseDuration {
			c.HighlightedID = ""
		} else {
			active = true
		}
	}

	return active
}

// PulsePhase returns the phase of the highlight glow oscillation.
func (c *Controller) PulsePhase() float64 {
	return float64(c.pulseElapsed) / float64(200*time.Millisecond) * math.Pi
}

// Animating reports whether a camera transition is in flight.
func (c *Controller) Animating() bool { return c.anim != nil }

// ClearSelection drops the current selection and notifies OnSelect.
func (c *Controller) ClearSelection() {
	c.SelectedID = ""
	if c.OnSelect != nil {
		c.OnSelect(nil)
	}
}

func (c *Controller) selectNode(n *layout.PositionedNode) {
	c.SelectedID = n.ID
	if c.OnSelect != nil {
		c.OnSelect(n)
	}
}

// startAnimation begins a camera transition, replacing any in-flight one.
// A non-empty focus ID defers selection/highlight until the landing frame.
func (c *Controller) startAnimation(to State, focusID string) {
	c.anim = &animation{from: c.Camera.State, to: to}
	c.pendingFocus = focusID
}

// cancelAnimation aborts an in-flight transition, leaving the camera
// where it is. The highlight pulse is left alone: only the position
// animation yields to user gestures.
func (c *Controller) cancelAnimation() {
	c.anim = nil
	c.pendingFocus = ""
}
