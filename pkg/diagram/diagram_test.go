package diagram

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestAddNode_RejectsEmptyID(t *testing.T) {
	d := New()
	err := d.AddNode(Node{Tier: TierCause})
	if !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode() error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddNode_RejectsDuplicateID(t *testing.T) {
	d := New()
	if err := d.AddNode(Node{ID: "a", Tier: TierCause}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	err := d.AddNode(Node{ID: "a", Tier: TierEffect})
	if !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddNode_RejectsInvalidTier(t *testing.T) {
	d := New()
	err := d.AddNode(Node{ID: "a", Tier: "middleish"})
	if !errors.Is(err, ErrInvalidTier) {
		t.Errorf("AddNode() error = %v, want ErrInvalidTier", err)
	}
}

func TestAddEdge_RejectsMissingEndpoints(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "a", Tier: TierCause})

	if err := d.AddEdge(Edge{From: "ghost", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownSourceNode", err)
	}
	if err := d.AddEdge(Edge{From: "a", To: "ghost"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestAddEdge_NormalizesDefaults(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "a", Tier: TierCause})
	d.AddNode(Node{ID: "b", Tier: TierEffect})
	if err := d.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	e := d.Edges()[0]
	if e.Strength != StrengthMedium {
		t.Errorf("Strength = %q, want %q", e.Strength, StrengthMedium)
	}
	if e.Effect != EffectIncreases {
		t.Errorf("Effect = %q, want %q", e.Effect, EffectIncreases)
	}
}

func TestTiers_DrawingOrder(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "out", Tier: TierEffect})
	d.AddNode(Node{ID: "in", Tier: TierLeaf})
	d.AddNode(Node{ID: "mid", Tier: TierIntermediate})

	got := d.Tiers()
	want := []Tier{TierLeaf, TierIntermediate, TierEffect}
	if len(got) != len(want) {
		t.Fatalf("Tiers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tiers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTier_Ordinal(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{TierLeaf, 0},
		{TierCause, 1},
		{TierIntermediate, 2},
		{TierEffect, 3},
		{Tier("bogus"), -1},
	}
	for _, tt := range tests {
		if got := tt.tier.Ordinal(); got != tt.want {
			t.Errorf("Ordinal(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestStrength_Weight(t *testing.T) {
	tests := []struct {
		s    Strength
		want int
	}{
		{StrengthWeak, 1},
		{StrengthMedium, 2},
		{StrengthStrong, 3},
		{Strength(""), 2},
		{Strength("odd"), 2},
	}
	for _, tt := range tests {
		if got := tt.s.Weight(); got != tt.want {
			t.Errorf("Weight(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "a", Tier: TierCause, Order: intPtr(2)})
	d.AddNode(Node{ID: "b", Tier: TierEffect})
	d.AddEdge(Edge{From: "a", To: "b", Strength: StrengthStrong})

	clone := d.Clone()
	clone.AddNode(Node{ID: "c", Tier: TierLeaf})
	n, _ := clone.Node("a")
	*n.Order = 9

	if d.NodeCount() != 2 {
		t.Errorf("original NodeCount() = %d, want 2", d.NodeCount())
	}
	orig, _ := d.Node("a")
	if *orig.Order != 2 {
		t.Errorf("original order = %d, want 2 (clone mutation leaked)", *orig.Order)
	}
	if clone.EdgeCount() != 1 {
		t.Errorf("clone EdgeCount() = %d, want 1", clone.EdgeCount())
	}
}

func TestDocument_Build(t *testing.T) {
	doc := Document{
		Nodes: []Node{
			{ID: "stress", Tier: TierCause},
			{ID: "sleep", Tier: TierIntermediate},
		},
		Edges: []Edge{{From: "stress", To: "sleep", Effect: EffectDecreases}},
	}

	d, err := doc.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if d.NodeCount() != 2 || d.EdgeCount() != 1 {
		t.Errorf("Build() = %d nodes/%d edges, want 2/1", d.NodeCount(), d.EdgeCount())
	}
}

func TestDocument_Build_ReportsBadEdge(t *testing.T) {
	doc := Document{
		Nodes: []Node{{ID: "a", Tier: TierCause}},
		Edges: []Edge{{From: "a", To: "missing"}},
	}
	_, err := doc.Build()
	if !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("Build() error = %v, want ErrUnknownTargetNode", err)
	}
}
