// Package render rasterizes a visibility-resolved family-tree layout.
//
// # Overview
//
// Two drawing paths share one scene walker:
//
//   - [Renderer.DrawFrame]: one interactive frame with background gradient,
//     connectors, node chrome (hover, selection, pulse highlight), and the
//     screen-space generation-label overlay. Stateless per call: the frame
//     is cleared and fully redrawn, never diffed.
//   - [Renderer.Export]: a static high-resolution rendering of the whole
//     graph at its natural bounds, without camera transform or interaction
//     chrome, for PNG and PDF export.
//
// All projection math goes through the camera state explicitly; nothing
// relies on an accumulated context matrix. Text stays crisp at any zoom
// because font faces are sized per effective scale.
package render
