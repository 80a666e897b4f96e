// Package view owns everything between a computed layout and the pixels:
// the visibility/opacity resolver, the camera transform, gesture
// interpretation, and animated camera transitions.
//
// # Coordinate Spaces
//
// World coordinates are the layout engine's output units. The camera maps
// world to screen as
//
//	screenX = (worldX + offsetX) * scale
//
// and all gesture math works through this transform and its inverse.
//
// # Time
//
// Animations never talk to a real clock. The [Controller] exposes
// Advance(dt) semantics: the host drives it from its frame loop (or a test
// drives it directly), advancing camera transitions and the highlight
// pulse deterministically.
package view
