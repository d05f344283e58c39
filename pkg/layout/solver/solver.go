// Package solver wraps the external graph-layout engine behind a small
// interface so layout strategies can be tested against a fake and the
// production graphviz bridge can be swapped without touching them.
//
// The layered and ranked strategies hand global positioning to the
// solver and refine the result afterwards; the clustering strategy
// never calls it. A Solver is stateless between calls, so one instance
// can serve concurrent layouts.
package solver

import (
	"context"
	"sync"
)

// Routing selects how the solver should route edges.
type Routing string

const (
	// RoutingCurved requests spline edges.
	RoutingCurved Routing = "curved"
	// RoutingStraight requests polyline edges.
	RoutingStraight Routing = "straight"
)

// Node is one box the solver must place. Sizes are in pixels.
type Node struct {
	ID   string
	W, H float64

	// PinFirst forces the node into the first layer, PinLast into the
	// last. The layered strategy pins leaf and cause nodes up and
	// effect nodes down; everything else floats.
	PinFirst bool
	PinLast  bool
}

// Edge is a directed constraint between two solver nodes.
type Edge struct {
	From, To string

	// Weight biases the solver toward keeping the edge short and
	// straight. Zero means "ordering only".
	Weight int

	// MinLen is the minimum number of ranks the edge must span.
	// Zero means the solver default of one.
	MinLen int

	// Invisible marks synthetic ordering edges. They constrain ranks
	// but are never part of the caller's diagram.
	Invisible bool
}

// Graph is one solve request. Layers always run top to bottom.
type Graph struct {
	Nodes   []Node
	Edges   []Edge
	Routing Routing

	// RankSep and NodeSep are the vertical and horizontal separations
	// in pixels. Zero picks the solver default.
	RankSep float64
	NodeSep float64

	// TreeRanking biases ranking toward a tree structure, which keeps
	// graphs with many cross-edges from fanning out into very wide
	// ranks. Used by the ranked strategy.
	TreeRanking bool
}

// Point is a node's placed top-left corner in pixels, screen
// orientation (Y grows downward).
type Point struct {
	X, Y float64
}

// Positions maps node ID to placed position.
type Positions map[string]Point

// Solver computes positions for a graph. Implementations must be
// stateless between calls and safe for concurrent use. Solve is the
// engine's single suspension point: it honors ctx and propagates
// failures unwrapped in meaning; retry and fallback are caller policy.
type Solver interface {
	Solve(ctx context.Context, g Graph) (Positions, error)
}

var (
	defaultOnce   sync.Once
	defaultSolver Solver
)

// Default returns the process-wide graphviz solver, built lazily on
// first use. The instance holds no per-call state, so sharing it is
// safe; inject a replacement via layout.Options.Solver for tests.
func Default() Solver {
	defaultOnce.Do(func() {
		defaultSolver = &GraphvizSolver{}
	})
	return defaultSolver
}
