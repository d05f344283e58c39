package layout

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/causelab/causeway/pkg/diagram"
)

// Cluster geometry.
const (
	gridPadX   = 14.0
	gridPadY   = 12.0
	gridGapX   = 14.0
	gridGapY   = 12.0
	clusterGap = 48.0
	rowGap     = 40.0
)

// tierBucket refines tiers for the clustering layout: causes split by
// incoming-edge presence, effects by outgoing-edge presence. Buckets
// are the layer order, top to bottom. Leaf nodes get their own top
// layer so the strict tier ordering against causes holds.
type tierBucket int

const (
	bucketLeaf tierBucket = iota
	bucketRootCause
	bucketDerivedCause
	bucketIntermediate
	bucketKnockOnEffect
	bucketTerminalEffect
	bucketCount
)

var bucketNames = [bucketCount]string{
	"leaf", "root-cause", "derived-cause", "intermediate", "knock-on", "terminal",
}

var bucketLabels = [bucketCount]string{
	"background", "root causes", "derived causes", "mechanisms", "knock-on effects", "outcomes",
}

func bucketFor(n diagram.Node, in *input) tierBucket {
	switch n.Tier {
	case diagram.TierLeaf:
		return bucketLeaf
	case diagram.TierCause:
		if in.incoming[n.ID] == 0 {
			return bucketRootCause
		}
		return bucketDerivedCause
	case diagram.TierEffect:
		if in.outgoing[n.ID] == 0 {
			return bucketTerminalEffect
		}
		return bucketKnockOnEffect
	default:
		return bucketIntermediate
	}
}

// cluster is one (subgroup, bucket) group: its members laid out as an
// internal grid, its bounding box, and its placed position.
type cluster struct {
	subgroup string
	bucket   tierBucket
	members  []diagram.Node
	cells    []gridCell
	w, h     float64
	x, y     float64
}

type gridCell struct {
	node       diagram.Node
	relX, relY float64
	s          size
}

func (c *cluster) id() string {
	return fmt.Sprintf("%s%s-%s", ClusterIDPrefix, c.subgroup, bucketNames[c.bucket])
}

func (c *cluster) centerX() float64 { return c.x + c.w/2 }

// clusteredStrategy is the fully custom layout: partition into
// category×bucket clusters, lay each out as a grid, order clusters per
// layer with a median heuristic plus transpose pass, then place layers
// with row wrapping and centroid targeting. No external solver.
type clusteredStrategy struct{}

func (clusteredStrategy) layout(_ context.Context, in *input, opts *Options) ([]PositionedNode, error) {
	clusters := partition(in)
	weights := clusterWeights(clusters, in)
	for _, c := range clusters {
		c.layoutGrid(opts)
	}

	layers := groupLayers(clusters)
	seedLayers(layers, weights)
	for i := 0; i < opts.OrderingIterations; i++ {
		for li := 1; li < len(layers); li++ {
			medianReorder(layers[li], layers[li-1], weights)
		}
		for li := len(layers) - 2; li >= 0; li-- {
			medianReorder(layers[li], layers[li+1], weights)
		}
		for li := range layers {
			transposeLayer(layers, li, weights, opts.TransposePasses)
		}
	}

	placeLayers(layers, weights, opts)

	containers := make([]PositionedNode, 0, len(clusters))
	var content []PositionedNode
	for _, c := range clusters {
		containers = append(containers, c.containerNode(opts))
		for _, cell := range c.cells {
			n := cell.node
			content = append(content, PositionedNode{
				ID:       n.ID,
				Kind:     KindContent,
				Label:    n.DisplayLabel(),
				Tier:     n.Tier,
				Subgroup: n.Subgroup,
				Items:    n.Items,
				X:        c.x + cell.relX,
				Y:        c.y + cell.relY,
				Width:    cell.s.w,
				Height:   cell.s.h,
			})
		}
	}
	return append(containers, content...), nil
}

// partition assigns every node to its (subgroup, bucket) cluster and
// returns the clusters in deterministic bucket-then-subgroup order
// with members sorted alphabetically.
func partition(in *input) []*cluster {
	byKey := make(map[string]*cluster)
	for _, n := range in.nodes {
		b := bucketFor(n, in)
		key := fmt.Sprintf("%d/%s", b, n.SubgroupKey())
		c, ok := byKey[key]
		if !ok {
			c = &cluster{subgroup: n.SubgroupKey(), bucket: b}
			byKey[key] = c
		}
		c.members = append(c.members, n)
	}

	clusters := make([]*cluster, 0, len(byKey))
	for _, c := range byKey {
		slices.SortFunc(c.members, func(a, b diagram.Node) int {
			return cmp.Compare(a.ID, b.ID)
		})
		clusters = append(clusters, c)
	}
	slices.SortFunc(clusters, func(a, b *cluster) int {
		if a.bucket != b.bucket {
			return int(a.bucket) - int(b.bucket)
		}
		return cmp.Compare(a.subgroup, b.subgroup)
	})
	return clusters
}

// clusterWeights sums edge strength weights for every ordered pair of
// distinct clusters.
type weightMatrix struct {
	of map[string]int // node ID → cluster index
	w  map[[2]int]int
}

func clusterWeights(clusters []*cluster, in *input) *weightMatrix {
	m := &weightMatrix{of: make(map[string]int), w: make(map[[2]int]int)}
	for i, c := range clusters {
		for _, n := range c.members {
			m.of[n.ID] = i
		}
	}
	for _, e := range in.edges {
		ci, cj := m.of[e.From], m.of[e.To]
		if ci != cj {
			m.w[[2]int{ci, cj}] += e.Strength.Weight()
		}
	}
	return m
}

// between returns the direction-agnostic weight linking two clusters.
func (m *weightMatrix) between(i, j int) int {
	return m.w[[2]int{i, j}] + m.w[[2]int{j, i}]
}

// layoutGrid places the cluster's members in a grid capped at
// MaxClusterColumns, with uniform cells sized to the widest member,
// and sets the cluster's bounding box.
func (c *cluster) layoutGrid(opts *Options) {
	cols := len(c.members)
	if cols > opts.MaxClusterColumns {
		cols = opts.MaxClusterColumns
	}
	rows := (len(c.members) + cols - 1) / cols

	cellW, cellH := 0.0, clusterMemberHeight
	sizes := make([]size, len(c.members))
	for i, n := range c.members {
		sizes[i] = estimateSize(n, opts.NodeWidth, roleClusterMember)
		if sizes[i].w > cellW {
			cellW = sizes[i].w
		}
	}

	c.cells = make([]gridCell, 0, len(c.members))
	for i, n := range c.members {
		col, row := i%cols, i/cols
		c.cells = append(c.cells, gridCell{
			node: n,
			relX: gridPadX + float64(col)*(cellW+gridGapX),
			relY: containerHeaderHeight + gridPadY + float64(row)*(cellH+gridGapY),
			s:    size{w: cellW, h: cellH},
		})
	}

	c.w = 2*gridPadX + float64(cols)*cellW + float64(cols-1)*gridGapX
	c.h = containerHeaderHeight + 2*gridPadY + float64(rows)*cellH + float64(rows-1)*gridGapY
}

// groupLayers buckets clusters into their ordered layers, dropping
// empty ones. Cluster indices refer to the partition order.
type layerEntry struct {
	idx int // index into the partition's cluster slice
	c   *cluster
}

func groupLayers(clusters []*cluster) [][]layerEntry {
	byBucket := make([][]layerEntry, bucketCount)
	for i, c := range clusters {
		byBucket[c.bucket] = append(byBucket[c.bucket], layerEntry{idx: i, c: c})
	}
	var layers [][]layerEntry
	for _, l := range byBucket {
		if len(l) > 0 {
			layers = append(layers, l)
		}
	}
	return layers
}

// seedLayers orders each layer center-out by total connectivity, so
// the most-connected clusters start near the middle where the median
// passes can pull their neighbors toward them.
func seedLayers(layers [][]layerEntry, weights *weightMatrix) {
	total := func(e layerEntry) int {
		sum := 0
		for pair, w := range weights.w {
			if pair[0] == e.idx || pair[1] == e.idx {
				sum += w
			}
		}
		return sum
	}

	for li, layer := range layers {
		sorted := slices.Clone(layer)
		slices.SortFunc(sorted, func(a, b layerEntry) int {
			if c := total(b) - total(a); c != 0 {
				return c
			}
			return cmp.Compare(a.c.subgroup, b.c.subgroup)
		})

		// Heaviest first, then alternate prepending and appending so
		// it ends up centermost.
		out := make([]layerEntry, 0, len(sorted))
		for i, e := range sorted {
			if i%2 == 0 {
				out = append(out, e)
			} else {
				out = append([]layerEntry{e}, out...)
			}
		}
		layers[li] = out
	}
}

// medianReorder re-sorts one layer by each cluster's weighted median
// neighbor position in the adjacent layer. Clusters without neighbors
// keep their current position as the median, so they don't drift.
func medianReorder(layer, adjacent []layerEntry, weights *weightMatrix) {
	adjPos := make(map[int]int, len(adjacent))
	for pos, e := range adjacent {
		adjPos[e.idx] = pos
	}

	medians := make(map[int]float64, len(layer))
	for pos, e := range layer {
		medians[e.idx] = weightedMedian(e.idx, pos, adjPos, weights)
	}

	slices.SortStableFunc(layer, func(a, b layerEntry) int {
		return cmp.Compare(medians[a.idx], medians[b.idx])
	})
}

// weightedMedian finds the position in the adjacent layer at which the
// cumulative connection weight reaches half the total.
func weightedMedian(idx, currentPos int, adjPos map[int]int, weights *weightMatrix) float64 {
	type link struct {
		pos    int
		weight int
	}
	var links []link
	total := 0
	for adjIdx, pos := range adjPos {
		if w := weights.between(idx, adjIdx); w > 0 {
			links = append(links, link{pos, w})
			total += w
		}
	}
	if total == 0 {
		return float64(currentPos)
	}

	slices.SortFunc(links, func(a, b link) int { return a.pos - b.pos })
	half := float64(total) / 2
	cum := 0
	for _, l := range links {
		cum += l.weight
		if float64(cum) >= half {
			return float64(l.pos)
		}
	}
	return float64(links[len(links)-1].pos)
}

// transposeLayer greedily swaps adjacent clusters whenever the swap
// strictly reduces the weighted crossing count against both adjacent
// layers, reverting swaps that don't help. Bounded to maxPasses sweeps:
// the pass converges to a local optimum, not a guaranteed global one.
func transposeLayer(layers [][]layerEntry, li int, weights *weightMatrix, maxPasses int) {
	layer := layers[li]
	if len(layer) < 2 {
		return
	}

	cost := func() int {
		total := 0
		if li > 0 {
			total += layerCrossings(layers[li-1], layer, weights)
		}
		if li < len(layers)-1 {
			total += layerCrossings(layer, layers[li+1], weights)
		}
		return total
	}

	for pass := 0; pass < maxPasses; pass++ {
		improved := false
		for i := 0; i+1 < len(layer); i++ {
			before := cost()
			layer[i], layer[i+1] = layer[i+1], layer[i]
			if cost() < before {
				improved = true
			} else {
				layer[i], layer[i+1] = layer[i+1], layer[i]
			}
		}
		if !improved {
			break
		}
	}
}

// layerCrossings counts weighted crossings between two adjacent layers
// in their current orders.
func layerCrossings(upper, lower []layerEntry, weights *weightMatrix) int {
	lowerPos := make(map[int]int, len(lower))
	for pos, e := range lower {
		lowerPos[e.idx] = pos
	}

	var edges []LayerEdge
	for upos, u := range upper {
		for _, l := range lower {
			if w := weights.between(u.idx, l.idx); w > 0 {
				edges = append(edges, LayerEdge{Upper: upos, Lower: lowerPos[l.idx], Weight: w})
			}
		}
	}
	return CountCrossings(edges, len(lower))
}

// placeLayers assigns absolute positions: layers stack top to bottom,
// wrapping into extra rows when wider than MaxRowWidth; within a row
// each cluster aims for its distance-decayed weighted centroid over
// already-placed layers, packed left to right without overlap; rows
// narrower than the widest are re-centered at the end.
type clusterRow struct {
	clusters []layerEntry
}

func placeLayers(layers [][]layerEntry, weights *weightMatrix, opts *Options) {
	layerOf := make(map[int]int)
	for li, layer := range layers {
		for _, e := range layer {
			layerOf[e.idx] = li
		}
	}
	placed := make(map[int]bool)

	// target returns the centroid X pulled from placed neighbors,
	// decayed by layer distance so far-away layers tug less.
	target := func(e layerEntry, li int) (float64, bool) {
		sumW, sumX := 0.0, 0.0
		for idx, otherLayer := range layerOf {
			if !placed[idx] || otherLayer == li {
				continue
			}
			w := weights.between(e.idx, idx)
			if w == 0 {
				continue
			}
			decayed := float64(w) / math.Abs(float64(otherLayer-li))
			sumW += decayed
			sumX += decayed * clusterByIdx(layers, idx).centerX()
		}
		if sumW == 0 {
			return 0, false
		}
		return sumX / sumW, true
	}

	var rows []clusterRow
	y := topMargin
	for li, layer := range layers {
		// Wrap the layer into rows.
		var current []layerEntry
		width := 0.0
		flush := func() {
			if len(current) == 0 {
				return
			}
			rows = append(rows, clusterRow{clusters: current})

			rowHeight := 0.0
			cursor := math.Inf(-1)
			for _, e := range current {
				desired := cursor
				if t, ok := target(e, li); ok {
					desired = t - e.c.w/2
				}
				x := math.Max(desired, cursor)
				if math.IsInf(x, -1) {
					x = 0
				}
				e.c.x = x
				e.c.y = y
				cursor = x + e.c.w + clusterGap
				if e.c.h > rowHeight {
					rowHeight = e.c.h
				}
				placed[e.idx] = true
			}
			y += rowHeight + rowGap
			current, width = nil, 0
		}

		for _, e := range layer {
			if len(current) > 0 && width+clusterGap+e.c.w > opts.MaxRowWidth {
				flush()
			}
			if len(current) > 0 {
				width += clusterGap
			}
			current = append(current, e)
			width += e.c.w
		}
		flush()

		y += opts.Spacing.TierGap - rowGap
	}

	recenterRows(rows)
}

func clusterByIdx(layers [][]layerEntry, idx int) *cluster {
	for _, layer := range layers {
		for _, e := range layer {
			if e.idx == idx {
				return e.c
			}
		}
	}
	return nil
}

// recenterRows aligns every row's center with the widest row's center
// and normalizes the whole drawing to a left margin.
func recenterRows(rows []clusterRow) {
	if len(rows) == 0 {
		return
	}

	type span struct{ left, right float64 }
	spans := make([]span, len(rows))
	widest, widestCenter := -1.0, 0.0
	for i, row := range rows {
		left, right := math.Inf(1), math.Inf(-1)
		for _, e := range row.clusters {
			left = math.Min(left, e.c.x)
			right = math.Max(right, e.c.x+e.c.w)
		}
		spans[i] = span{left, right}
		if w := right - left; w > widest {
			widest = w
			widestCenter = (left + right) / 2
		}
	}

	minLeft := math.Inf(1)
	for i, row := range rows {
		shift := widestCenter - (spans[i].left+spans[i].right)/2
		for _, e := range row.clusters {
			e.c.x += shift
		}
		minLeft = math.Min(minLeft, spans[i].left+shift)
	}

	const leftMargin = 40.0
	offset := leftMargin - minLeft
	for _, row := range rows {
		for _, e := range row.clusters {
			e.c.x += offset
		}
	}
}

// containerNode emits the cluster's box with its category color and a
// label naming both category and bucket.
func (c *cluster) containerNode(opts *Options) PositionedNode {
	style, styled := opts.subgroupStyle(c.subgroup)
	label := bucketLabels[c.bucket]
	if c.subgroup != diagram.DefaultSubgroup {
		name := c.subgroup
		if styled && style.Label != "" {
			name = style.Label
		}
		label = fmt.Sprintf("%s (%s)", name, bucketLabels[c.bucket])
	}

	return PositionedNode{
		ID:       c.id(),
		Kind:     KindContainer,
		Label:    label,
		Tier:     c.members[0].Tier,
		Subgroup: c.subgroup,
		X:        c.x,
		Y:        c.y,
		Width:    c.w,
		Height:   c.h,
		Fill:     style.Colors.Fill,
		Stroke:   style.Colors.Stroke,
		Header:   style.Colors.Header,
	}
}
