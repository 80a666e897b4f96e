package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sbhuiyan/kintree/pkg/cache"
	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/layout"
	"github.com/sbhuiyan/kintree/pkg/observability"
	"github.com/sbhuiyan/kintree/pkg/render"
	"github.com/sbhuiyan/kintree/pkg/render/nodelink"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// DocumentFetcher loads a raw member document from the portal.
// Implemented by [api.Client].
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, refresh bool) (tree.Document, error)
}

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results, so one Runner can serve concurrent requests with
// different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Portal   DocumentFetcher
	Renderer *render.Renderer
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default, and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Renderer: render.New(),
	}
}

// Result is the output of a full pipeline run.
type Result struct {
	Data      *tree.Data
	Relations *tree.Relations
	Layout    *layout.Result
	Artifacts map[string][]byte
	TreeHash  string
	Stats     Stats
	CacheInfo CacheInfo
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	parseStart := time.Now()
	data, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Relations = tree.BuildRelations(data)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Members = len(data.Nodes)
	result.Stats.Edges = len(data.Edges)

	if raw, err := tree.Marshal(data); err == nil {
		result.TreeHash = cache.Hash(raw)
	}

	opts.Logger.Info("parsed family graph",
		"members", len(data.Nodes),
		"edges", len(data.Edges),
		"duration", result.Stats.ParseTime)

	layoutStart := time.Now()
	l, hit, err := r.ComputeLayout(ctx, data, result.TreeHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	opts.Logger.Info("computed layout",
		"generations", len(l.Generations),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	hits, err := r.Render(ctx, l, data, opts, result.Artifacts)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHits = hits

	opts.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse loads, validates, and normalizes the raw member document.
func (r *Runner) Parse(ctx context.Context, opts Options) (*tree.Data, error) {
	source := opts.Input
	if opts.FromPortal {
		source = "portal"
	}
	observability.Pipeline().OnParseStart(ctx, source)
	start := time.Now()

	data, err := r.parse(ctx, opts)

	count := 0
	if data != nil {
		count = len(data.Nodes)
	}
	observability.Pipeline().OnParseComplete(ctx, source, count, time.Since(start), err)
	return data, err
}

func (r *Runner) parse(ctx context.Context, opts Options) (*tree.Data, error) {
	var doc tree.Document
	var err error

	if opts.FromPortal {
		if r.Portal == nil {
			return nil, kterrors.New(kterrors.ErrCodeInternal, "no portal client configured")
		}
		doc, err = r.Portal.FetchDocument(ctx, opts.Refresh)
	} else {
		doc, err = tree.ReadDocumentFile(opts.Input)
	}
	if err != nil {
		return nil, err
	}

	invalid := 0
	for _, res := range tree.ValidateDocument(doc) {
		if res.OK() {
			continue
		}
		invalid++
		for _, msg := range res.Errors {
			opts.Logger.Warn("invalid member", "id", res.MemberID, "problem", msg)
		}
	}
	if invalid > 0 && opts.Strict {
		return nil, kterrors.New(kterrors.ErrCodeInvalidMember,
			"%d of %d members failed validation", invalid, len(doc.Members))
	}

	data := tree.ParseMembers(doc)
	return &data, nil
}

// ComputeLayout lays out the graph and resolves visibility. Layouts are
// cached by tree hash, device, and view state.
func (r *Runner) ComputeLayout(ctx context.Context, data *tree.Data, treeHash string, opts Options) (*layout.Result, bool, error) {
	design, err := layout.DesignFor(opts.Device)
	if err != nil {
		return nil, false, err
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Device, len(data.Nodes))
	start := time.Now()

	key := r.Keyer.LayoutKey(treeHash, cache.LayoutKeyOpts{Device: opts.Device})
	if !opts.Refresh && treeHash != "" {
		if raw, ok, _ := r.Cache.Get(ctx, key); ok {
			var cached layout.Result
			if err := json.Unmarshal(raw, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				view.Resolve(&cached, tree.BuildRelations(data), opts.SelectedID, opts.View)
				observability.Pipeline().OnLayoutComplete(ctx, opts.Device, time.Since(start), nil)
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l := layout.Compute(data, design)
	if treeHash != "" {
		if raw, err := json.Marshal(l); err == nil {
			_ = r.Cache.Set(ctx, key, raw, DefaultArtifactTTL)
			observability.Cache().OnCacheSet(ctx, "layout", len(raw))
		}
	}

	view.Resolve(l, tree.BuildRelations(data), opts.SelectedID, opts.View)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Device, time.Since(start), nil)
	return l, false, nil
}

// Render produces the requested artifacts, serving unchanged ones from
// cache. Returns the number of cache hits.
func (r *Runner) Render(ctx context.Context, l *layout.Result, data *tree.Data, opts Options, artifacts map[string][]byte) (int, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutHash := ""
	if raw, err := json.Marshal(l); err == nil {
		layoutHash = cache.Hash(raw)
	}

	hits := 0
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{Format: format, Device: opts.Device})
		if !opts.Refresh && layoutHash != "" {
			if cached, ok, _ := r.Cache.Get(ctx, key); ok {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = cached
				hits++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		out, err := r.renderFormat(format, l, data)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return hits, err
		}
		artifacts[format] = out

		if layoutHash != "" {
			_ = r.Cache.Set(ctx, key, out, DefaultArtifactTTL)
			observability.Cache().OnCacheSet(ctx, "artifact", len(out))
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return hits, nil
}

func (r *Runner) renderFormat(format string, l *layout.Result, data *tree.Data) ([]byte, error) {
	switch format {
	case FormatPNG:
		return r.Renderer.ExportPNG(l, data.Edges)
	case FormatPDF:
		return r.Renderer.ExportPDF(l, data.Edges)
	case FormatDOT:
		return []byte(nodelink.ToDOT(data, nodelink.Options{Detailed: true})), nil
	case FormatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(data, nodelink.Options{Detailed: true}))
	case FormatJSON:
		return tree.Marshal(data)
	default:
		return nil, kterrors.New(kterrors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}
