package diagram_test

import (
	"fmt"

	"github.com/causelab/causeway/pkg/diagram"
)

func ExampleDiagram_basic() {
	// A minimal causal chain: deforestation → runoff → flooding
	d := diagram.New()
	_ = d.AddNode(diagram.Node{ID: "deforestation", Tier: diagram.TierCause})
	_ = d.AddNode(diagram.Node{ID: "runoff", Tier: diagram.TierIntermediate})
	_ = d.AddNode(diagram.Node{ID: "flooding", Tier: diagram.TierEffect})
	_ = d.AddEdge(diagram.Edge{From: "deforestation", To: "runoff", Strength: diagram.StrengthStrong})
	_ = d.AddEdge(diagram.Edge{From: "runoff", To: "flooding"})

	fmt.Println("Nodes:", d.NodeCount())
	fmt.Println("Edges:", d.EdgeCount())
	fmt.Println("Tiers:", d.Tiers())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Tiers: [cause intermediate effect]
}

func ExampleDiagram_traversal() {
	d := diagram.New()
	_ = d.AddNode(diagram.Node{ID: "stress", Tier: diagram.TierCause})
	_ = d.AddNode(diagram.Node{ID: "sleep loss", Tier: diagram.TierIntermediate})
	_ = d.AddNode(diagram.Node{ID: "fatigue", Tier: diagram.TierEffect})
	_ = d.AddEdge(diagram.Edge{From: "stress", To: "sleep loss"})
	_ = d.AddEdge(diagram.Edge{From: "sleep loss", To: "fatigue"})

	fmt.Println("Downstream of stress:", d.Outgoing("stress"))
	fmt.Println("Upstream of fatigue:", d.Incoming("fatigue"))
	// Output:
	// Downstream of stress: [sleep loss]
	// Upstream of fatigue: [sleep loss]
}

func ExampleValidate() {
	nodes := []diagram.Node{
		{ID: "a", Tier: diagram.TierCause},
	}
	edges := []diagram.Edge{
		{From: "a", To: "ghost"},
	}

	for _, f := range diagram.Validate(nodes, edges) {
		fmt.Printf("%s %s\n", f.Severity, f.Code)
	}
	// Output:
	// warning dangling_endpoint
}
