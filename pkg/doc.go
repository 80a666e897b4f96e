// Package pkg provides the core libraries for kintree family-tree
// visualization.
//
// # Overview
//
// Kintree turns a raw member export into an interactive, navigable family
// tree. The pkg directory is organized into five main areas:
//
//  1. [tree] - Domain logic (parsing, validation, relationship indexes)
//  2. [layout] - Generational placement with responsive device profiles
//  3. [view] - Camera, gestures, animation, and visibility resolution
//  4. [render] - Canvas drawing and PNG/PDF/SVG/DOT export
//  5. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through kintree:
//
//	Member Export (file or portal)
//	         ↓
//	    [tree] package (validate + normalize + index)
//	         ↓
//	    [layout] package (generational subtree placement)
//	         ↓
//	    [view] package (camera, selection, visibility)
//	         ↓
//	    [render] package (canvas frame or export artifact)
//
// # Quick Start
//
// Parse an export and render it as PNG:
//
//	import (
//	    "context"
//	    "github.com/sbhuiyan/kintree/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "family.json",
//	    Formats: []string{"png"},
//	})
//	png := result.Artifacts["png"]
//
// # Main Packages
//
// [tree] - Graph parsing and validation. Members become nodes; spouse
// edges are deduplicated by canonical pair key and parent edges run
// parent→child. Relations provides O(1) spouse/children/parents lookup
// with cycle-safe ancestor and descendant walks.
//
// [layout] - The generational layout engine. Family units (node plus
// spouse) are placed side by side, children centered underneath, and
// sibling subtrees separated by group gaps. Three device profiles
// (mobile, tablet, desktop) supply the spacing tokens.
//
// [view] - Interactive state: a pan/zoom camera with world/screen
// projection, a gesture controller (click, drag, wheel, double-tap,
// pinch) with injectable time for deterministic tests, and the
// visibility resolver for generation collapse and lineage focus.
//
// [render] - Drawing. DrawFrame renders one interactive frame through a
// camera transform; Export renders the full tree at fixed scale for
// PNG and PDF artifacts. The nodelink subpackage emits Graphviz DOT
// and SVG.
//
// [pipeline] - Complete visualization pipeline used by the CLI and
// serve mode, with content-hash caching of layouts and artifacts.
//
// ## Infrastructure
//
// [cache] - File, Redis, and null cache backends behind one interface,
// plus the Keyer that derives tree/layout/artifact cache keys.
//
// [session] - Stored portal sessions for the CLI (~/.config/kintree).
//
// [api] - Authenticated HTTP client for the family portal.
//
// [archive] - MongoDB-backed snapshot store with hash deduplication.
//
// [config] - TOML configuration from ~/.config/kintree/config.toml.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Pluggable pipeline, cache, and HTTP hooks.
//
// [tree]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/tree
// [layout]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/layout
// [view]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/view
// [render]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/cache
// [session]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/session
// [api]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/api
// [archive]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/archive
// [config]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/config
// [errors]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sbhuiyan/kintree/pkg/observability
package pkg
