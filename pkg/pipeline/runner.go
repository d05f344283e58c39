package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/causelab/causeway/pkg/cache"
	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/httputil"
	"github.com/causelab/causeway/pkg/layout"
	"github.com/causelab/causeway/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, HTTP client, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	HTTP   *httputil.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		HTTP:   httputil.NewClient(nil),
		Logger: logger,
	}
}

// Execute runs the complete load → validate → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	loadStart := time.Now()
	doc, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.ExecuteDocument(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	result.CacheInfo.LoadHit = loadHit
	return result, nil
}

// ExecuteDocument runs validate → layout → render on an already-loaded
// document. The API uses this for documents posted in request bodies.
func (r *Runner) ExecuteDocument(ctx context.Context, doc diagram.Document, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Document:  doc,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = len(doc.Nodes)
	result.Stats.EdgeCount = len(doc.Edges)

	// Compute document hash for cache keys and API responses
	if docData, err := json.Marshal(doc); err == nil {
		result.DocumentHash = cache.Hash(docData)
	}

	// Stage 2: Validate
	findings := diagram.Validate(doc.Nodes, doc.Edges)
	if diagram.HasErrors(findings) {
		return nil, validationError(findings)
	}
	result.Findings = findings
	for _, f := range findings {
		opts.Logger.Warn("validation finding", "code", f.Code, "message", f.Message)
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"algorithm", opts.Algorithm,
		"duration", result.Stats.LayoutTime)

	// Driver rankings are always computed; opts.Drivers only controls
	// whether the panel is rendered in the SVG.
	if d, err := buildDiagram(doc); err == nil {
		result.Drivers = diagram.RankDrivers(d, DefaultTopDrivers)
	}

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, doc, result.Drivers, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads a document with caching and returns cache hit
// info. Only remote loads consult the cache; local files change under our
// feet and read cheaply.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (diagram.Document, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return diagram.Document{}, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	format, name := loadTarget(opts)
	observability.Pipeline().OnLoadStart(ctx, format, name)

	doc, hit, err := r.load(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, format, name, len(doc.Nodes), time.Since(start), err)
	return doc, hit, err
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (diagram.Document, error) {
	doc, _, err := r.LoadWithCacheInfo(ctx, opts)
	return doc, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc diagram.Document, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Algorithm, len(doc.Nodes))

	// Compute cache key
	docData, _ := json.Marshal(doc)
	docHash := cache.Hash(docData)
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Pipeline().OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), nil)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Compute layout
	res, err := layout.Compute(ctx, doc.Nodes, doc.Edges, opts.LayoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), err)
	if err != nil {
		return layout.Result{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return res, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc diagram.Document, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res layout.Result, doc diagram.Document, drivers []diagram.DriverRanking, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := json.Marshal(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		for range opts.Formats {
			observability.Cache().OnCacheHit(ctx, "artifact")
		}
		return artifacts, true, nil
	}

	// Render all formats
	rendered, err := Render(ctx, res, doc, drivers, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res layout.Result, doc diagram.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, doc, nil, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// validationError folds error findings into one data error.
func validationError(findings []diagram.Finding) error {
	var msgs []string
	for _, f := range findings {
		if f.Severity == diagram.SeverityError {
			msgs = append(msgs, f.Message)
		}
	}
	return errors.New(errors.ErrCodeData, "document is invalid: %s", strings.Join(msgs, "; "))
}

// buildDiagram assembles a Diagram for exports and rankings. Edges with
// missing endpoints are validation warnings and get skipped here the same
// way the layout engine skips them.
func buildDiagram(doc diagram.Document) (*diagram.Diagram, error) {
	d := diagram.New()
	for _, n := range doc.Nodes {
		if err := d.AddNode(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeData, err, "add node %s", n.ID)
		}
	}
	for _, e := range doc.Edges {
		if err := d.AddEdge(e); err != nil {
			continue
		}
	}
	return d, nil
}
