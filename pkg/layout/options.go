package layout

import (
	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/layout/solver"
)

// Algorithm names accepted by Options.Algorithm.
const (
	AlgorithmLayered   = "layered"
	AlgorithmRanked    = "ranked"
	AlgorithmClustered = "clustered"
)

// ValidAlgorithms is the set of supported layout algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmLayered:   true,
	AlgorithmRanked:    true,
	AlgorithmClustered: true,
}

// Edge routing names accepted by Options.EdgeRouting.
const (
	RoutingCurved   = "curved"
	RoutingStraight = "straight"
)

// ValidRoutings is the set of supported edge routings.
var ValidRoutings = map[string]bool{
	RoutingCurved:   true,
	RoutingStraight: true,
}

// Default values applied by ValidateAndSetDefaults. These are the
// single source of truth for CLI, API, and library callers.
const (
	// DefaultAlgorithm is the layered strategy.
	DefaultAlgorithm = AlgorithmLayered

	// DefaultRouting requests curved edges.
	DefaultRouting = RoutingCurved

	// DefaultNodeWidth is the uniform node width the layered strategy
	// hands to the solver, in pixels.
	DefaultNodeWidth = 150.0

	// DefaultTierGap is the vertical gap between tier bands.
	DefaultTierGap = 90.0

	// DefaultCauseSpacing is the horizontal spacing between nodes in
	// the cause row. Leaf rows share it: leaf and cause occupy the
	// same first solver layer.
	DefaultCauseSpacing = 40.0

	// DefaultIntermediateSpacing is the horizontal spacing in the
	// intermediate row, wider because those nodes carry sub-items.
	DefaultIntermediateSpacing = 52.0

	// DefaultEffectSpacing is the horizontal spacing in the effect row.
	DefaultEffectSpacing = 36.0

	// DefaultFrameWidth is the horizontal center line rows are packed
	// around, in pixels.
	DefaultFrameWidth = 1400.0

	// DefaultMaxClusterColumns caps the grid width inside one cluster.
	DefaultMaxClusterColumns = 3

	// DefaultMaxRowWidth is the width at which a cluster layer wraps
	// into an additional row.
	DefaultMaxRowWidth = 1600.0

	// DefaultOrderingIterations is the number of median-heuristic
	// sweeps the clustering layout runs.
	DefaultOrderingIterations = 4

	// DefaultTransposePasses bounds the greedy adjacent-swap sweeps
	// per layer per ordering iteration. The heuristic stops at a local
	// optimum; raising this trades time for (sometimes) fewer
	// crossings on large graphs.
	DefaultTransposePasses = 4
)

// Spacing holds the per-tier distances. Zero values fall back to
// defaults; negative values are configuration errors.
type Spacing struct {
	TierGap             float64 `json:"tier_gap,omitempty"`
	CauseSpacing        float64 `json:"cause_spacing,omitempty"`
	IntermediateSpacing float64 `json:"intermediate_spacing,omitempty"`
	EffectSpacing       float64 `json:"effect_spacing,omitempty"`
}

// Colors styles one subgroup's container box.
type Colors struct {
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
	Header string `json:"header,omitempty"`
}

// SubgroupStyle labels and colors the containers of one subgroup key.
// Nodes whose subgroup has no configured style fall back to an
// unstyled default container; that is not an error.
type SubgroupStyle struct {
	Label  string `json:"label,omitempty"`
	Colors Colors `json:"colors,omitempty"`
}

// Options configures one layout call. The zero value is usable: every
// field has a documented default applied by ValidateAndSetDefaults.
// Unknown algorithm or routing names and negative spacing fail fast
// there, before any layout work begins.
type Options struct {
	// Algorithm selects the strategy: layered, ranked, or clustered.
	Algorithm string `json:"algorithm,omitempty"`

	// NodeWidth fixes every node's width. Zero keeps text-derived
	// widths from the geometry estimator.
	NodeWidth float64 `json:"node_width,omitempty"`

	Spacing Spacing `json:"spacing,omitempty"`

	// Subgroups styles subgroup containers by key.
	Subgroups map[string]SubgroupStyle `json:"subgroups,omitempty"`

	// HideContainers suppresses all container nodes in the result.
	HideContainers bool `json:"hide_containers,omitempty"`

	// EdgeRouting is passed through to the external solver: curved or
	// straight.
	EdgeRouting string `json:"edge_routing,omitempty"`

	// FrameWidth is the center line rows are packed around.
	FrameWidth float64 `json:"frame_width,omitempty"`

	// Clustering-layout tunables.
	MaxClusterColumns  int     `json:"max_cluster_columns,omitempty"`
	MaxRowWidth        float64 `json:"max_row_width,omitempty"`
	OrderingIterations int     `json:"ordering_iterations,omitempty"`
	TransposePasses    int     `json:"transpose_passes,omitempty"`

	// Solver overrides the process-wide external solver. Nil picks
	// solver.Default(). Tests inject fakes here.
	Solver solver.Solver `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has run.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent and is the single place defaults are merged;
// strategies never apply their own.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.EdgeRouting == "" {
		o.EdgeRouting = DefaultRouting
	}

	var errs errors.ValidationErrors
	if !ValidAlgorithms[o.Algorithm] {
		errs.Add("algorithm", "unknown value %q (must be one of: layered, ranked, clustered)", o.Algorithm)
	}
	if !ValidRoutings[o.EdgeRouting] {
		errs.Add("edge_routing", "unknown value %q (must be one of: curved, straight)", o.EdgeRouting)
	}
	if o.NodeWidth < 0 {
		errs.Add("node_width", "must not be negative, got %g", o.NodeWidth)
	}
	if o.Spacing.TierGap < 0 {
		errs.Add("spacing.tier_gap", "must not be negative, got %g", o.Spacing.TierGap)
	}
	if o.Spacing.CauseSpacing < 0 {
		errs.Add("spacing.cause_spacing", "must not be negative, got %g", o.Spacing.CauseSpacing)
	}
	if o.Spacing.IntermediateSpacing < 0 {
		errs.Add("spacing.intermediate_spacing", "must not be negative, got %g", o.Spacing.IntermediateSpacing)
	}
	if o.Spacing.EffectSpacing < 0 {
		errs.Add("spacing.effect_spacing", "must not be negative, got %g", o.Spacing.EffectSpacing)
	}
	if o.MaxClusterColumns < 0 {
		errs.Add("max_cluster_columns", "must not be negative, got %d", o.MaxClusterColumns)
	}
	if o.MaxRowWidth < 0 {
		errs.Add("max_row_width", "must not be negative, got %g", o.MaxRowWidth)
	}
	if o.OrderingIterations < 0 {
		errs.Add("ordering_iterations", "must not be negative, got %d", o.OrderingIterations)
	}
	if o.TransposePasses < 0 {
		errs.Add("transpose_passes", "must not be negative, got %d", o.TransposePasses)
	}
	if err := errs.AsError(); err != nil {
		return err
	}

	if o.Spacing.TierGap == 0 {
		o.Spacing.TierGap = DefaultTierGap
	}
	if o.Spacing.CauseSpacing == 0 {
		o.Spacing.CauseSpacing = DefaultCauseSpacing
	}
	if o.Spacing.IntermediateSpacing == 0 {
		o.Spacing.IntermediateSpacing = DefaultIntermediateSpacing
	}
	if o.Spacing.EffectSpacing == 0 {
		o.Spacing.EffectSpacing = DefaultEffectSpacing
	}
	if o.FrameWidth == 0 {
		o.FrameWidth = DefaultFrameWidth
	}
	if o.MaxClusterColumns == 0 {
		o.MaxClusterColumns = DefaultMaxClusterColumns
	}
	if o.MaxRowWidth == 0 {
		o.MaxRowWidth = DefaultMaxRowWidth
	}
	if o.OrderingIterations == 0 {
		o.OrderingIterations = DefaultOrderingIterations
	}
	if o.TransposePasses == 0 {
		o.TransposePasses = DefaultTransposePasses
	}
	if o.Solver == nil {
		o.Solver = solver.Default()
	}

	o.validated = true
	return nil
}

// spacingFor returns the horizontal node spacing for one tier's row.
// Leaf rows use the cause spacing: both sit in the first solver layer.
func (o *Options) spacingFor(t diagram.Tier) float64 {
	switch t {
	case diagram.TierIntermediate:
		return o.Spacing.IntermediateSpacing
	case diagram.TierEffect:
		return o.Spacing.EffectSpacing
	default:
		return o.Spacing.CauseSpacing
	}
}

// subgroupStyle resolves the style for a subgroup key, reporting
// whether one was configured.
func (o *Options) subgroupStyle(key string) (SubgroupStyle, bool) {
	s, ok := o.Subgroups[key]
	return s, ok
}

// routing converts the validated config value to the solver's type.
func (o *Options) routing() solver.Routing {
	if o.EdgeRouting == RoutingStraight {
		return solver.RoutingStraight
	}
	return solver.RoutingCurved
}
