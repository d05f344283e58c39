package diagram

import (
	"cmp"
	"slices"
)

// DriverRanking scores one node by its downstream influence.
type DriverRanking struct {
	NodeID string  `json:"node_id"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Direct int     `json:"direct"` // outgoing edge count
	Reach  int     `json:"reach"`  // distinct downstream nodes
}

// RankDrivers returns the topN nodes by influence score, highest first.
// Influence is the sum of edge strength weights over every edge on the
// node's downstream closure, decayed by depth: the node's own outgoing
// edges count at full weight, its targets' outgoing edges at half, and
// so on. Distance decay keeps a long chain of weak links from
// outscoring a hub of strong direct effects.
//
// Ties break by node ID so rankings are stable across runs. Rankings
// never affect layout; they feed the legend panel and the CLI view.
func RankDrivers(d *Diagram, topN int) []DriverRanking {
	if topN <= 0 || d.NodeCount() == 0 {
		return nil
	}

	weights, targets := edgeWeights(d)

	rankings := make([]DriverRanking, 0, d.NodeCount())
	for _, n := range d.Nodes() {
		r := DriverRanking{NodeID: n.ID, Label: n.DisplayLabel(), Direct: len(d.Outgoing(n.ID))}

		depth := map[string]int{n.ID: 0}
		frontier := []string{n.ID}
		for len(frontier) > 0 {
			var next []string
			for _, id := range frontier {
				for _, target := range targets[id] {
					r.Score += weights[edgeKey{id, target}] / float64(depth[id]+1)
					if _, seen := depth[target]; !seen {
						depth[target] = depth[id] + 1
						next = append(next, target)
					}
				}
			}
			frontier = next
		}
		r.Reach = len(depth) - 1
		rankings = append(rankings, r)
	}

	slices.SortFunc(rankings, func(a, b DriverRanking) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.NodeID, b.NodeID)
	})

	if len(rankings) > topN {
		rankings = rankings[:topN]
	}
	return rankings
}

type edgeKey struct{ from, to string }

// edgeWeights sums strength weights per (from, to) pair so parallel
// edges accumulate, and collects each node's distinct targets in first-
// edge order so traversal touches every pair exactly once.
func edgeWeights(d *Diagram) (map[edgeKey]float64, map[string][]string) {
	w := make(map[edgeKey]float64, d.EdgeCount())
	targets := make(map[string][]string)
	for _, e := range d.Edges() {
		key := edgeKey{e.From, e.To}
		if _, seen := w[key]; !seen {
			targets[e.From] = append(targets[e.From], e.To)
		}
		w[key] += float64(e.Strength.Weight())
	}
	return w, targets
}
