package layout

import "testing"

func TestCountCrossings(t *testing.T) {
	tests := []struct {
		name       string
		edges      []LayerEdge
		lowerWidth int
		want       int
	}{
		{
			name: "no edges",
			want: 0,
		},
		{
			name:       "single edge",
			edges:      []LayerEdge{{Upper: 0, Lower: 1, Weight: 2}},
			lowerWidth: 2,
			want:       0,
		},
		{
			name: "parallel edges never cross",
			edges: []LayerEdge{
				{Upper: 0, Lower: 0, Weight: 1},
				{Upper: 1, Lower: 1, Weight: 1},
				{Upper: 2, Lower: 2, Weight: 1},
			},
			lowerWidth: 3,
			want:       0,
		},
		{
			name: "simple X crossing",
			edges: []LayerEdge{
				{Upper: 0, Lower: 1, Weight: 1},
				{Upper: 1, Lower: 0, Weight: 1},
			},
			lowerWidth: 2,
			want:       1,
		},
		{
			name: "weighted crossing multiplies",
			edges: []LayerEdge{
				{Upper: 0, Lower: 1, Weight: 3},
				{Upper: 1, Lower: 0, Weight: 2},
			},
			lowerWidth: 2,
			want:       6,
		},
		{
			name: "shared endpoint does not cross",
			edges: []LayerEdge{
				{Upper: 0, Lower: 1, Weight: 1},
				{Upper: 1, Lower: 1, Weight: 1},
			},
			lowerWidth: 2,
			want:       0,
		},
		{
			name: "three-way tangle",
			edges: []LayerEdge{
				{Upper: 0, Lower: 2, Weight: 1},
				{Upper: 1, Lower: 1, Weight: 1},
				{Upper: 2, Lower: 0, Weight: 1},
			},
			lowerWidth: 3,
			want:       3,
		},
		{
			name: "mixed weights",
			edges: []LayerEdge{
				{Upper: 0, Lower: 2, Weight: 2},
				{Upper: 1, Lower: 0, Weight: 3},
				{Upper: 2, Lower: 1, Weight: 1},
			},
			lowerWidth: 3,
			// (0,2)x(1,0): 2*3, (0,2)x(2,1): 2*1. (1,0) and (2,1) do
			// not invert.
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCrossings(tt.edges, tt.lowerWidth); got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountCrossingsMatchesNaive(t *testing.T) {
	edges := []LayerEdge{
		{Upper: 0, Lower: 3, Weight: 2},
		{Upper: 1, Lower: 1, Weight: 1},
		{Upper: 1, Lower: 4, Weight: 3},
		{Upper: 2, Lower: 0, Weight: 1},
		{Upper: 3, Lower: 2, Weight: 2},
		{Upper: 4, Lower: 4, Weight: 1},
	}

	naive := 0
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			a, b := edges[i], edges[j]
			if (a.Upper < b.Upper && a.Lower > b.Lower) || (b.Upper < a.Upper && b.Lower > a.Lower) {
				naive += a.Weight * b.Weight
			}
		}
	}

	if got := CountCrossings(edges, 5); got != naive {
		t.Errorf("CountCrossings() = %d, naive count = %d", got, naive)
	}
}
