package layout

import (
	"context"
	"sort"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/layout/solver"
)

// rankAlignTolerance is the Y-center band within which solver-placed
// nodes count as sharing a rank. The solver centers nodes of differing
// heights within a rank, so their top edges drift apart; the alignment
// pass snaps each band back to one shared top.
const rankAlignTolerance = 14.0

// rankedStrategy delegates to the external rank-assignment solver with
// estimator-derived node sizes (unlike the layered strategy's uniform
// boxes) and synthetic minimum-length ordering edges, then aligns
// same-rank nodes and enforces the tier bands.
type rankedStrategy struct{}

func (rankedStrategy) layout(ctx context.Context, in *input, opts *Options) ([]PositionedNode, error) {
	sizes := make(map[string]size, len(in.nodes))
	for _, n := range in.nodes {
		sizes[n.ID] = estimateSize(n, opts.NodeWidth, rolePlain)
	}

	pos, err := opts.Solver.Solve(ctx, rankedGraph(in, opts, sizes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSolver, err, "ranked layout")
	}

	content := make([]PositionedNode, 0, len(in.nodes))
	for _, n := range in.nodes {
		p := pos[n.ID]
		s := sizes[n.ID]
		content = append(content, PositionedNode{
			ID:       n.ID,
			Kind:     KindContent,
			Label:    n.DisplayLabel(),
			Tier:     n.Tier,
			Subgroup: n.Subgroup,
			Items:    n.Items,
			X:        p.X,
			Y:        p.Y,
			Width:    s.w,
			Height:   s.h,
		})
	}

	alignRanks(content)
	enforceTierBands(content, opts.Spacing.TierGap)

	left, right := horizontalSpan(content)
	return assembleWithContainers(content, in, opts, (left+right)/2), nil
}

// rankedGraph builds the solver request: estimator-sized nodes,
// tree-biased ranking, and invisible zero-weight ordering edges that
// force vertical separation even when tiers share no real edges.
func rankedGraph(in *input, opts *Options, sizes map[string]size) solver.Graph {
	g := solver.Graph{
		Routing:     opts.routing(),
		RankSep:     opts.Spacing.TierGap,
		NodeSep:     opts.Spacing.CauseSpacing,
		TreeRanking: true,
	}
	for _, n := range in.nodes {
		s := sizes[n.ID]
		g.Nodes = append(g.Nodes, solver.Node{ID: n.ID, W: s.w, H: s.h})
	}
	for _, e := range in.edges {
		g.Edges = append(g.Edges, solver.Edge{
			From:   e.From,
			To:     e.To,
			Weight: e.Strength.Weight(),
		})
	}
	g.Edges = append(g.Edges, orderingEdges(in)...)
	return g
}

// orderingEdges builds the synthetic minimum-length edges: from a
// deterministic anchor (lexicographically first node of the lowest
// present tier) to every node of each later tier that no real
// inter-tier edge already enters, with minlen scaled by tier distance.
func orderingEdges(in *input) []solver.Edge {
	present := in.presentTiers()
	if len(present) < 2 {
		return nil
	}

	anchorTier := present[0]
	anchor := ""
	for _, n := range in.tiers[anchorTier] {
		if anchor == "" || n.ID < anchor {
			anchor = n.ID
		}
	}

	// Tiers already entered by a real edge from a lower-ordinal tier
	// are ranked by that edge; synthetic ones would only fight it.
	entered := make(map[diagram.Tier]bool)
	for _, e := range in.edges {
		from, to := in.byID[e.From], in.byID[e.To]
		if from.Tier.Ordinal() < to.Tier.Ordinal() {
			entered[to.Tier] = true
		}
	}

	var edges []solver.Edge
	for _, t := range present[1:] {
		if entered[t] {
			continue
		}
		delta := t.Ordinal() - anchorTier.Ordinal()
		for _, n := range in.tiers[t] {
			if n.ID == anchor {
				continue
			}
			edges = append(edges, solver.Edge{
				From:      anchor,
				To:        n.ID,
				Weight:    0,
				MinLen:    2 * delta,
				Invisible: true,
			})
		}
	}
	return edges
}

// alignRanks groups nodes whose Y centers fall within the tolerance
// band and snaps each group to the shared top edge - the lowest
// (maximum-Y) top among the group, so no member rises above where the
// solver placed it.
func alignRanks(content []PositionedNode) {
	idx := make([]int, len(content))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return content[idx[a]].CenterY() < content[idx[b]].CenterY()
	})

	for start := 0; start < len(idx); {
		end := start + 1
		base := content[idx[start]].CenterY()
		for end < len(idx) && content[idx[end]].CenterY()-base <= rankAlignTolerance {
			end++
		}

		top := content[idx[start]].Y
		for _, i := range idx[start:end] {
			if content[i].Y > top {
				top = content[i].Y
			}
		}
		for _, i := range idx[start:end] {
			content[i].Y = top
		}
		start = end
	}
}

// enforceTierBands shifts whole tiers down until every tier starts
// strictly below the previous one. The solver plus synthetic edges
// already order tiers on connected inputs; this guarantees the
// invariant for degenerate disconnected ones too.
func enforceTierBands(content []PositionedNode, tierGap float64) {
	byTier := make(map[diagram.Tier][]int)
	for i, n := range content {
		byTier[n.Tier] = append(byTier[n.Tier], i)
	}

	prevBottom := -tierGap
	first := true
	for _, t := range diagram.TierOrder {
		members := byTier[t]
		if len(members) == 0 {
			continue
		}

		minY := content[members[0]].Y
		for _, i := range members[1:] {
			if content[i].Y < minY {
				minY = content[i].Y
			}
		}
		if !first && minY <= prevBottom {
			shift := prevBottom + tierGap - minY
			for _, i := range members {
				content[i].Y += shift
			}
		}
		first = false

		for _, i := range members {
			if b := content[i].Bottom(); b > prevBottom {
				prevBottom = b
			}
		}
	}
}
