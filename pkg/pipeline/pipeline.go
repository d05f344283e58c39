// Package pipeline provides the core diagram pipeline for Causeway.
//
// This package implements the complete load → validate → layout → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a diagram document from a file, reader, or remote URL
//  2. Validate: Check the document for structural problems
//  3. Layout: Compute positions for the causal diagram
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "climate.yaml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	doc, err := runner.Load(ctx, opts)
//
//	// Layout with an existing document
//	res, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, res, doc, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/causelab/causeway/pkg/cache"
	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/layout"
	"github.com/causelab/causeway/pkg/layout/solver"
	"github.com/causelab/causeway/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTheme is the default render theme.
	DefaultTheme = "default"

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0

	// DefaultTopDrivers is how many driver rankings are computed per run.
	DefaultTopDrivers = 10

	// DefaultBatchWorkers bounds the RunBatch worker pool when the caller
	// passes zero.
	DefaultBatchWorkers = 4
)

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatJSON:    true,
	FormatMermaid: true,
	FormatDOT:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path    string `json:"path,omitempty"`
	URL     string `json:"url,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	Algorithm      string                            `json:"algorithm,omitempty"`
	EdgeRouting    string                            `json:"edge_routing,omitempty"`
	NodeWidth      float64                           `json:"node_width,omitempty"`
	TierGap        float64                           `json:"tier_gap,omitempty"`
	HideContainers bool                              `json:"hide_containers,omitempty"`
	Subgroups      map[string]layout.SubgroupStyle   `json:"subgroups,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Theme       string   `json:"theme,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Legend      bool     `json:"legend,omitempty"`
	Drivers     bool     `json:"drivers,omitempty"`
	Transparent bool     `json:"transparent,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Solver solver.Solver `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded diagram document.
	Document diagram.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Findings lists validation warnings (errors abort the run).
	Findings []diagram.Finding

	// Layout contains the positioned nodes and styled edges.
	Layout layout.Result

	// Drivers ranks nodes by downstream influence. Always computed;
	// opts.Drivers only controls whether the panel is rendered.
	Drivers []diagram.DriverRanking

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the document came from cache (remote loads only)
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, mermaid, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme is known to the renderer.
func ValidateTheme(theme string) error {
	if _, ok := render.Themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %q (must be one of: default, dark)", theme)
	}
	return nil
}

// ValidateAlgorithm checks that a layout algorithm is valid.
func ValidateAlgorithm(algorithm string) error {
	if !layout.ValidAlgorithms[algorithm] {
		return fmt.Errorf("invalid algorithm: %q (must be one of: layered, ranked, clustered)", algorithm)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a document.
func (o *Options) ValidateForLoad() error {
	// A path that carries an HTTP scheme is a URL; CLI callers pass a
	// single positional argument without distinguishing.
	if o.URL == "" && isURL(o.Path) {
		o.URL = o.Path
		o.Path = ""
	}
	if o.Path == "" && o.URL == "" {
		return fmt.Errorf("path or url is required")
	}
	if o.Path != "" && o.URL != "" {
		return fmt.Errorf("path and url are mutually exclusive")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = layout.DefaultAlgorithm
	}
	if o.EdgeRouting == "" {
		o.EdgeRouting = layout.DefaultRouting
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if !layout.ValidRoutings[o.EdgeRouting] {
		return fmt.Errorf("invalid edge_routing: %q (must be one of: curved, straight)", o.EdgeRouting)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Theme)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts pipeline options to engine options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Algorithm:      o.Algorithm,
		EdgeRouting:    o.EdgeRouting,
		NodeWidth:      o.NodeWidth,
		Spacing:        layout.Spacing{TierGap: o.TierGap},
		Subgroups:      o.Subgroups,
		HideContainers: o.HideContainers,
		Solver:         o.Solver,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:      o.Algorithm,
		EdgeRouting:    o.EdgeRouting,
		NodeWidth:      o.NodeWidth,
		TierGap:        o.TierGap,
		HideContainers: o.HideContainers,
		SubgroupsHash:  o.subgroupsHash(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Theme:       o.Theme,
		Scale:       o.Scale,
		Legend:      o.Legend,
		Drivers:     o.Drivers,
		Transparent: o.Transparent,
	}
}

// RenderOptions builds SVG renderer options from pipeline options.
func (o *Options) RenderOptions(drivers []diagram.DriverRanking) []render.Option {
	var renderOpts []render.Option
	if o.Theme != "" && o.Theme != DefaultTheme {
		renderOpts = append(renderOpts, render.WithTheme(o.Theme))
	}
	if o.Legend {
		renderOpts = append(renderOpts, render.WithLegend())
	}
	if o.Drivers && len(drivers) > 0 {
		renderOpts = append(renderOpts, render.WithDrivers(drivers))
	}
	if o.Transparent {
		renderOpts = append(renderOpts, render.Transparent())
	}
	return renderOpts
}

// subgroupsHash fingerprints the subgroup styling map for cache keys.
// Returns "" when no subgroups are configured.
func (o *Options) subgroupsHash() string {
	if len(o.Subgroups) == 0 {
		return ""
	}
	data, err := json.Marshal(o.Subgroups)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
