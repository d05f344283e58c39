package diagram

import "testing"

func TestRankDrivers_OrdersByInfluence(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "hub", Tier: TierCause})
	d.AddNode(Node{ID: "minor", Tier: TierCause})
	d.AddNode(Node{ID: "m1", Tier: TierIntermediate})
	d.AddNode(Node{ID: "m2", Tier: TierIntermediate})
	d.AddNode(Node{ID: "out", Tier: TierEffect})
	d.AddEdge(Edge{From: "hub", To: "m1", Strength: StrengthStrong})
	d.AddEdge(Edge{From: "hub", To: "m2", Strength: StrengthStrong})
	d.AddEdge(Edge{From: "minor", To: "m2", Strength: StrengthWeak})
	d.AddEdge(Edge{From: "m1", To: "out", Strength: StrengthMedium})

	rankings := RankDrivers(d, 2)
	if len(rankings) != 2 {
		t.Fatalf("RankDrivers() returned %d entries, want 2", len(rankings))
	}
	if rankings[0].NodeID != "hub" {
		t.Errorf("top driver = %q, want %q", rankings[0].NodeID, "hub")
	}
	// hub: 3 + 3 direct, plus m1→out at depth 2: 2/2 = 1.
	if got, want := rankings[0].Score, 7.0; got != want {
		t.Errorf("hub score = %v, want %v", got, want)
	}
	if rankings[0].Reach != 3 {
		t.Errorf("hub reach = %d, want 3", rankings[0].Reach)
	}
}

func TestRankDrivers_TiesBreakByID(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "b", Tier: TierCause})
	d.AddNode(Node{ID: "a", Tier: TierCause})
	d.AddNode(Node{ID: "x", Tier: TierEffect})
	d.AddEdge(Edge{From: "b", To: "x"})
	d.AddEdge(Edge{From: "a", To: "x"})

	rankings := RankDrivers(d, 3)
	if rankings[0].NodeID != "a" || rankings[1].NodeID != "b" {
		t.Errorf("tie order = %q, %q, want a, b", rankings[0].NodeID, rankings[1].NodeID)
	}
}

func TestRankDrivers_EmptyAndZeroN(t *testing.T) {
	if got := RankDrivers(New(), 5); got != nil {
		t.Errorf("RankDrivers(empty) = %v, want nil", got)
	}
	d := New()
	d.AddNode(Node{ID: "a", Tier: TierCause})
	if got := RankDrivers(d, 0); got != nil {
		t.Errorf("RankDrivers(n=0) = %v, want nil", got)
	}
}

func TestRankDrivers_ParallelEdgesAccumulate(t *testing.T) {
	d := New()
	d.AddNode(Node{ID: "a", Tier: TierCause})
	d.AddNode(Node{ID: "b", Tier: TierEffect})
	d.AddEdge(Edge{From: "a", To: "b", Strength: StrengthWeak})
	d.AddEdge(Edge{From: "a", To: "b", Strength: StrengthWeak})

	rankings := RankDrivers(d, 1)
	if got, want := rankings[0].Score, 2.0; got != want {
		t.Errorf("score = %v, want %v (two weak edges sum)", got, want)
	}
}
