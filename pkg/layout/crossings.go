package layout

import "slices"

// LayerEdge connects position Upper in an upper layer to position
// Lower in the layer below it, with a positive weight. Positions are
// left-to-right indexes within each layer's current order.
type LayerEdge struct {
	Upper, Lower int
	Weight       int
}

// CountCrossings returns the weighted crossing count between two
// adjacent layers: for every pair of edges whose layer-order pairs are
// inverted, the product of the two edge weights. Uses a Fenwick tree
// over lower positions for O(E log V) instead of the naive O(E²).
//
// Two edges (u1,l1) and (u2,l2) cross iff u1 < u2 and l1 > l2. Edges
// sharing an endpoint position never cross. The transpose pass in the
// clustering layout recomputes this before and after every candidate
// swap; its accept-only-if-strictly-smaller rule is what makes the
// crossing count non-increasing.
func CountCrossings(edges []LayerEdge, lowerWidth int) int {
	if len(edges) < 2 || lowerWidth == 0 {
		return 0
	}

	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, func(a, b LayerEdge) int {
		if a.Upper != b.Upper {
			return a.Upper - b.Upper
		}
		return a.Lower - b.Lower
	})

	// Fenwick tree over lower positions, accumulating weights. For
	// each edge in upper-then-lower order, every earlier edge with a
	// strictly larger lower position crosses it; the tree answers
	// "summed weight at positions <= l" so the crossing weight is
	// total - query(l).
	fenwick := make([]int, lowerWidth+1)
	crossings, total := 0, 0
	for _, e := range sorted {
		lessOrEqual := 0
		for q := e.Lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += e.Weight * (total - lessOrEqual)

		total += e.Weight
		for idx := e.Lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx] += e.Weight
		}
	}
	return crossings
}
