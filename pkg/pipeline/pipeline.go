// Package pipeline provides the core visualization pipeline for kintree.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI commands and the serve mode. Centralizing it keeps
// caching and validation behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load a raw member document (file or portal), validate it,
//     and normalize it into the canonical graph.
//  2. Layout: Compute world-space positions for a device profile and
//     resolve visibility for the selected member and view options.
//  3. Render: Generate output artifacts (PNG, PDF, SVG, DOT, JSON).
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "family.json",
//	    Device:  "desktop",
//	    Formats: []string{"png"},
//	})
//	png := result.Artifacts["png"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// Output format constants.
const (
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatPDF:  true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Defaults applied by ValidateAndSetDefaults.
const (
	DefaultDevice = layout.DeviceDesktop
	DefaultFormat = FormatPNG

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// Options configures a pipeline run.
type Options struct {
	// Input is a path to a raw member document. Leave empty and set
	// FromPortal to fetch the document from the logged-in portal instead.
	Input      string
	FromPortal bool

	// Strict rejects the document on any validation finding instead of
	// logging and continuing.
	Strict bool

	// Refresh bypasses caches for every stage.
	Refresh bool

	// Device selects the layout token profile.
	Device string

	// Formats are the artifacts to render.
	Formats []string

	// SelectedID and View drive the visibility resolver, so exports can
	// reproduce an interactive view state.
	SelectedID string
	View       view.Options

	// Logger receives stage progress. Defaults to log.Default().
	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" && !o.FromPortal {
		return kterrors.New(kterrors.ErrCodeInvalidInput, "no input: provide a file or --portal")
	}
	if o.Input != "" && o.FromPortal {
		return kterrors.New(kterrors.ErrCodeInvalidInput, "input file and --portal are mutually exclusive")
	}

	if o.Device == "" {
		o.Device = DefaultDevice
	}
	if _, err := layout.DesignFor(o.Device); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return kterrors.New(kterrors.ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}

	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

// Stats collects per-stage timings and graph size.
type Stats struct {
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
	Members    int
	Edges      int
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit    bool
	ArtifactHits int
}
