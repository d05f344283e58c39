package layout

import (
	"context"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
)

// Compute lays out a causal diagram and returns positioned nodes plus
// styled edges. All state is created fresh per call and discarded when
// it returns; concurrent calls need no locking.
//
// Configuration errors surface before any layout work. Edges whose
// endpoints are missing from the node set are skipped defensively
// (validation is the data loader's job); nodes are never skipped -
// every input node ID appears exactly once among the result's content
// nodes. Solver failures propagate to the caller without retry.
func Compute(ctx context.Context, nodes []diagram.Node, edges []diagram.Edge, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	if len(nodes) == 0 {
		return Result{Nodes: []PositionedNode{}, Edges: []StyledEdge{}}, nil
	}

	in := buildInput(nodes, edges)

	var s strategy
	switch opts.Algorithm {
	case AlgorithmLayered:
		s = layeredStrategy{}
	case AlgorithmRanked:
		s = rankedStrategy{}
	case AlgorithmClustered:
		s = clusteredStrategy{}
	default:
		// Unreachable after validation; kept so the switch stays
		// exhaustive if a new algorithm tag is added.
		return Result{}, errors.New(errors.ErrCodeConfig, "unknown algorithm %q", opts.Algorithm)
	}

	placed, err := s.layout(ctx, in, &opts)
	if err != nil {
		return Result{}, err
	}
	if opts.HideContainers {
		placed = withoutContainers(placed)
	}
	return Result{Nodes: placed, Edges: StyleEdges(in.edges)}, nil
}

// strategy is the sealed dispatch seam: one implementation per
// algorithm tag, all consuming the same input shape and producing
// output under the same invariants (completeness, strict tier-Y
// ordering, containers before content).
type strategy interface {
	layout(ctx context.Context, in *input, opts *Options) ([]PositionedNode, error)
}

// input is the indexed per-call view of the diagram. Edges are
// normalized and stripped of dangling endpoints; nodes pass through
// untouched.
type input struct {
	nodes []diagram.Node
	edges []diagram.Edge

	byID     map[string]diagram.Node
	incoming map[string]int
	outgoing map[string]int

	// neighbors is direction-agnostic adjacency with per-pair summed
	// strength weights, the shape barycenter and centroid passes need.
	neighbors map[string][]neighbor

	// tiers holds each present tier's nodes in input order.
	tiers map[diagram.Tier][]diagram.Node
}

type neighbor struct {
	id     string
	weight int
}

func buildInput(nodes []diagram.Node, edges []diagram.Edge) *input {
	in := &input{
		nodes:     nodes,
		byID:      make(map[string]diagram.Node, len(nodes)),
		incoming:  make(map[string]int),
		outgoing:  make(map[string]int),
		neighbors: make(map[string][]neighbor),
		tiers:     make(map[diagram.Tier][]diagram.Node),
	}
	for _, n := range nodes {
		in.byID[n.ID] = n
		in.tiers[n.Tier] = append(in.tiers[n.Tier], n)
	}
	for _, e := range edges {
		if _, ok := in.byID[e.From]; !ok {
			continue
		}
		if _, ok := in.byID[e.To]; !ok {
			continue
		}
		e = e.Normalized()
		in.edges = append(in.edges, e)
		in.incoming[e.To]++
		in.outgoing[e.From]++
		w := e.Strength.Weight()
		in.neighbors[e.From] = append(in.neighbors[e.From], neighbor{e.To, w})
		in.neighbors[e.To] = append(in.neighbors[e.To], neighbor{e.From, w})
	}
	return in
}

// presentTiers returns the tiers that have nodes, in drawing order.
func (in *input) presentTiers() []diagram.Tier {
	var present []diagram.Tier
	for _, t := range diagram.TierOrder {
		if len(in.tiers[t]) > 0 {
			present = append(present, t)
		}
	}
	return present
}

func withoutContainers(nodes []PositionedNode) []PositionedNode {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind != KindContainer {
			out = append(out, n)
		}
	}
	return out
}

// assembleWithContainers prepends tier and subgroup containers to the
// placed content nodes. Shared by the layered and ranked strategies;
// the clustering strategy emits its own cluster containers instead.
func assembleWithContainers(content []PositionedNode, in *input, opts *Options, centerX float64) []PositionedNode {
	byID := make(map[string]PositionedNode, len(content))
	for _, n := range content {
		byID[n.ID] = n
	}

	var containers []PositionedNode
	for _, t := range in.presentTiers() {
		var members []PositionedNode
		subgroupMembers := make(map[string][]PositionedNode)
		var subgroupOrder []string

		for _, n := range in.tiers[t] {
			placed := byID[n.ID]
			members = append(members, placed)
			key := n.SubgroupKey()
			if key == diagram.DefaultSubgroup {
				continue
			}
			if _, seen := subgroupMembers[key]; !seen {
				subgroupOrder = append(subgroupOrder, key)
			}
			subgroupMembers[key] = append(subgroupMembers[key], placed)
		}

		if c := deriveTierContainer(t, members, centerX, opts.FrameWidth); c != nil {
			containers = append(containers, *c)
		}
		for _, key := range subgroupOrder {
			style, _ := opts.subgroupStyle(key)
			if c := deriveSubgroupContainer(t, key, subgroupMembers[key], style); c != nil {
				containers = append(containers, *c)
			}
		}
	}

	return append(containers, content...)
}
