// Package nodelink renders family graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// people appear as boxes connected by arrows. It's an alternative to the
// canvas renderer for cases where a schematic diagram is preferred, or when
// the output needs to be post-processed with external Graphviz tooling.
//
// # Usage
//
// Convert a family graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(data, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Parent edges are directed parent to child; spouse edges are undirected
// dashed constraints kept on the same rank, so Graphviz's layered layout
// approximates the generational rows of the canvas renderer.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
