package layout

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/layout/solver"
)

// Row-packing geometry shared by the layered strategy.
const (
	topMargin   = 60.0
	subgroupGap = 64.0
)

// layeredStrategy delegates global ordering to the external layered
// solver, then overrides Y per tier into fixed bands and recomputes X
// per row with subgroup-aware packing. The solver's X survives only as
// the lowest-priority ordering signal.
type layeredStrategy struct{}

func (layeredStrategy) layout(ctx context.Context, in *input, opts *Options) ([]PositionedNode, error) {
	pos, err := opts.Solver.Solve(ctx, layeredGraph(in, opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSolver, err, "layered layout")
	}
	solverX := func(id string) float64 { return pos[id].X }

	centerX := opts.FrameWidth / 2
	content := make([]PositionedNode, 0, len(in.nodes))
	var ref map[string]float64 // center X of the previously placed tier
	y := topMargin

	for _, t := range in.presentTiers() {
		row := in.tiers[t]
		sizes := make(map[string]size, len(row))
		tierHeight := 0.0
		for _, n := range row {
			s := estimateSize(n, opts.NodeWidth, rolePlain)
			sizes[n.ID] = s
			if s.h > tierHeight {
				tierHeight = s.h
			}
		}

		ordered := orderRow(row, solverX, ref, in)
		placed := packRow(ordered, sizes, y, centerX, opts.spacingFor(t))
		content = append(content, placed...)

		ref = make(map[string]float64, len(placed))
		for _, p := range placed {
			ref[p.ID] = p.CenterX()
		}
		y += tierHeight + opts.Spacing.TierGap
	}

	return assembleWithContainers(content, in, opts, centerX), nil
}

// layeredGraph builds the solver request: uniform node boxes, hard
// layer constraints pinning leaf and cause to the first layer and
// effect to the last, real edges weighted by strength.
func layeredGraph(in *input, opts *Options) solver.Graph {
	width := opts.NodeWidth
	if width == 0 {
		width = DefaultNodeWidth
	}

	g := solver.Graph{
		Routing: opts.routing(),
		RankSep: opts.Spacing.TierGap,
		NodeSep: opts.Spacing.CauseSpacing,
	}
	for _, n := range in.nodes {
		g.Nodes = append(g.Nodes, solver.Node{
			ID:       n.ID,
			W:        width,
			H:        plainNodeHeight,
			PinFirst: n.Tier == diagram.TierLeaf || n.Tier == diagram.TierCause,
			PinLast:  n.Tier == diagram.TierEffect,
		})
	}
	for _, e := range in.edges {
		g.Edges = append(g.Edges, solver.Edge{
			From:   e.From,
			To:     e.To,
			Weight: e.Strength.Weight(),
		})
	}
	return g
}

// orderRow sequences one tier's nodes left to right. Priority:
// explicit order when any node in the row sets it (ascending, ties by
// prior position), then barycenter against the previously placed tier
// (ties by existing X), then solver X alone.
func orderRow(row []diagram.Node, solverX func(string) float64, ref map[string]float64, in *input) []diagram.Node {
	ordered := slices.Clone(row)

	hasOrder := false
	for _, n := range row {
		if n.HasOrder() {
			hasOrder = true
			break
		}
	}

	switch {
	case hasOrder:
		slices.SortStableFunc(ordered, func(a, b diagram.Node) int {
			if c := cmp.Compare(orderKey(a), orderKey(b)); c != 0 {
				return c
			}
			return cmp.Compare(solverX(a.ID), solverX(b.ID))
		})
	case len(ref) > 0:
		slices.SortStableFunc(ordered, func(a, b diagram.Node) int {
			if c := cmp.Compare(barycenter(a.ID, ref, in, solverX), barycenter(b.ID, ref, in, solverX)); c != 0 {
				return c
			}
			return cmp.Compare(solverX(a.ID), solverX(b.ID))
		})
	default:
		slices.SortStableFunc(ordered, func(a, b diagram.Node) int {
			return cmp.Compare(solverX(a.ID), solverX(b.ID))
		})
	}
	return ordered
}

// orderKey treats unset explicit orders as "after everything ordered".
func orderKey(n diagram.Node) int {
	if n.HasOrder() {
		return n.OrderValue()
	}
	return math.MaxInt
}

// barycenter returns the mean center X of the node's distinct
// edge-connected neighbors (direction-agnostic) in the reference set.
// A node with no reference neighbor keeps its existing X.
func barycenter(id string, ref map[string]float64, in *input, solverX func(string) float64) float64 {
	sum, count := 0.0, 0
	seen := make(map[string]bool)
	for _, nb := range in.neighbors[id] {
		if seen[nb.id] {
			continue
		}
		seen[nb.id] = true
		if x, ok := ref[nb.id]; ok {
			sum += x
			count++
		}
	}
	if count == 0 {
		return solverX(id)
	}
	return sum / float64(count)
}

// packRow assigns X positions for an ordered row at band top y.
// Subgroup buckets (first-seen order) become contiguous runs joined by
// subgroupGap, and the whole row is centered on centerX.
func packRow(ordered []diagram.Node, sizes map[string]size, y, centerX, spacing float64) []PositionedNode {
	var bucketKeys []string
	buckets := make(map[string][]diagram.Node)
	for _, n := range ordered {
		key := n.SubgroupKey()
		if _, seen := buckets[key]; !seen {
			bucketKeys = append(bucketKeys, key)
		}
		buckets[key] = append(buckets[key], n)
	}

	total := 0.0
	for i, key := range bucketKeys {
		if i > 0 {
			total += subgroupGap
		}
		total += bucketWidth(buckets[key], sizes, spacing)
	}

	placed := make([]PositionedNode, 0, len(ordered))
	x := centerX - total/2
	for i, key := range bucketKeys {
		if i > 0 {
			x += subgroupGap
		}
		for j, n := range buckets[key] {
			if j > 0 {
				x += spacing
			}
			s := sizes[n.ID]
			placed = append(placed, PositionedNode{
				ID:       n.ID,
				Kind:     KindContent,
				Label:    n.DisplayLabel(),
				Tier:     n.Tier,
				Subgroup: n.Subgroup,
				Items:    n.Items,
				X:        x,
				Y:        y,
				Width:    s.w,
				Height:   s.h,
			})
			x += s.w
		}
	}
	return placed
}

func bucketWidth(nodes []diagram.Node, sizes map[string]size, spacing float64) float64 {
	w := 0.0
	for i, n := range nodes {
		if i > 0 {
			w += spacing
		}
		w += sizes[n.ID].w
	}
	return w
}
