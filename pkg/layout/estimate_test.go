package layout

import (
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
)

func TestEstimateSize(t *testing.T) {
	short := diagram.Node{ID: "x", Label: "GDP"}
	long := diagram.Node{ID: "y", Label: "Prolonged supply chain disruption across sectors"}

	s1 := estimateSize(short, 0, rolePlain)
	s2 := estimateSize(long, 0, rolePlain)

	if s1.w != minNodeWidth {
		t.Errorf("short label width = %g, want minimum %g", s1.w, minNodeWidth)
	}
	if s2.w <= s1.w {
		t.Errorf("longer label should be wider: %g <= %g", s2.w, s1.w)
	}
	if s1.h != plainNodeHeight || s2.h != plainNodeHeight {
		t.Errorf("plain heights = %g, %g; want %g", s1.h, s2.h, plainNodeHeight)
	}
}

func TestEstimateSizeFixedWidth(t *testing.T) {
	n := diagram.Node{ID: "x", Label: "An extremely long label that would normally widen the node"}
	s := estimateSize(n, 150, rolePlain)
	if s.w != 150 {
		t.Errorf("fixed width ignored: got %g, want 150", s.w)
	}
}

func TestEstimateSizeItems(t *testing.T) {
	n := diagram.Node{
		ID:    "x",
		Label: "Mechanism",
		Items: []diagram.Item{{Label: "first"}, {Label: "second"}, {Label: "third"}},
	}

	s := estimateSize(n, 0, rolePlain)
	want := expandableBaseHeight + 3*itemHeight
	if s.h != want {
		t.Errorf("height = %g, want %g", s.h, want)
	}

	// Item text can set the width when longer than the label.
	wide := diagram.Node{
		ID:    "y",
		Label: "short",
		Items: []diagram.Item{{Label: "x", Text: "a very detailed explanation that dominates the width"}},
	}
	if estimateSize(wide, 0, rolePlain).w <= estimateSize(n, 0, rolePlain).w {
		t.Error("long item text should widen the node")
	}
}

func TestEstimateSizeClusterMember(t *testing.T) {
	n := diagram.Node{
		ID:    "x",
		Label: "Member",
		Items: []diagram.Item{{Label: "a"}, {Label: "b"}},
	}
	s := estimateSize(n, 0, roleClusterMember)
	if s.h != clusterMemberHeight {
		t.Errorf("cluster member height = %g, want %g regardless of items", s.h, clusterMemberHeight)
	}
}

func TestEstimateSizeDeterministic(t *testing.T) {
	n := diagram.Node{ID: "x", Label: "Inflation", Items: []diagram.Item{{Label: "cpi"}}}
	if estimateSize(n, 0, rolePlain) != estimateSize(n, 0, rolePlain) {
		t.Error("same node produced different sizes")
	}
}
