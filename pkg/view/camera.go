package view

import "github.com/sbhuiyan/kintree/pkg/layout"

// State is the camera transform: pan offset in world units and a zoom
// scale. Mutated continuously by gestures and transitions, never persisted.
type State struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Camera owns the view transform and its zoom limits.
type Camera struct {
	State
	MinZoom float64
	MaxZoom float64
}

// NewCamera creates a camera at identity with the design's zoom limits.
func NewCamera(design layout.Design) *Camera {
	return &Camera{
		State:   State{Scale: 1},
		MinZoom: design.MinZoom,
		MaxZoom: design.MaxZoom,
	}
}

// WorldToScreen projects a world point through the camera transform.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return (wx + c.OffsetX) * c.Scale, (wy + c.OffsetY) * c.Scale
}

// ScreenToWorld inverts the camera transform for a screen point.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx/c.Scale - c.OffsetX, sy/c.Scale - c.OffsetY
}

// Pan shifts the view by a screen-space delta, converting to world units.
func (c *Camera) Pan(dxScreen, dyScreen float64) {
	c.OffsetX += dxScreen / c.Scale
	c.OffsetY += dyScreen / c.Scale
}

// ZoomAt multiplies the scale by factor, clamped to the zoom limits, while
// keeping the world point under the screen anchor (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	newScale := c.clamp(c.Scale * factor)

	wx, wy := c.ScreenToWorld(sx, sy)
	c.OffsetX = sx/newScale - wx
	c.OffsetY = sy/newScale - wy
	c.Scale = newScale
}

// clamp bounds a scale to [MinZoom, MaxZoom].
func (c *Camera) clamp(scale float64) float64 {
	if scale < c.MinZoom {
		return c.MinZoom
	}
	if scale > c.MaxZoom {
		return c.MaxZoom
	}
	return scale
}

// Fit computes the state that centers the layout bounds in a viewport of
// the given pixel size, zoomed to fit with the design padding. Degenerate
// bounds (empty tree or a single point) fall back to scale 1 with the
// world origin mapped to the viewport center.
func Fit(b layout.Bounds, viewportW, viewportH float64, design layout.Design) State {
	if b.Empty() {
		return State{
			Scale:   1,
			OffsetX: viewportW / 2,
			OffsetY: viewportH / 2,
		}
	}

	padding := design.Padding
	availW := viewportW - padding*2
	availH := viewportH - padding*2

	scale := min(availW/b.Width(), availH/b.Height())
	if scale < design.MinZoom {
		scale = design.MinZoom
	}
	if scale > design.MaxZoom {
		scale = design.MaxZoom
	}

	return State{
		Scale:   scale,
		OffsetX: viewportW/2/scale - b.CenterX(),
		OffsetY: viewportH/2/scale - b.CenterY(),
	}
}

// FocusTarget computes the state that centers a node at a comfortable
// reading zoom.
func FocusTarget(n *layout.PositionedNode, viewportW, viewportH float64, design layout.Design) State {
	scale := max(1, design.MinZoom*5)
	return State{
		Scale:   scale,
		OffsetX: viewportW/2/scale - n.CenterX(),
		OffsetY: viewportH/2/scale - n.CenterY(),
	}
}
