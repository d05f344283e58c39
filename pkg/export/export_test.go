package export

import (
	"fmt"
	"strings"
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
)

func buildDiagram(t *testing.T) *diagram.Diagram {
	t.Helper()
	d := diagram.New()
	for _, n := range []diagram.Node{
		{ID: "drought", Tier: diagram.TierCause, Label: "Prolonged drought"},
		{ID: "crop failure", Tier: diagram.TierIntermediate},
		{ID: "prices", Tier: diagram.TierEffect, Label: "Food prices"},
	} {
		if err := d.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []diagram.Edge{
		{From: "drought", To: "crop failure", Strength: diagram.StrengthStrong},
		{From: "crop failure", To: "prices", Effect: diagram.EffectMixed},
	} {
		if err := d.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestMermaid(t *testing.T) {
	out := Mermaid(buildDiagram(t))

	for _, want := range []string{
		"flowchart TB",
		`subgraph cause["Causes"]`,
		`drought["Prolonged drought"]`,
		`crop_failure["crop failure"]`,
		`drought -->|"strong"| crop_failure`,
		"crop_failure -.-> prices",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestMermaidDeterministic(t *testing.T) {
	a := Mermaid(buildDiagram(t))
	b := Mermaid(buildDiagram(t))
	if a != b {
		t.Error("identical diagrams exported differently")
	}
}

func TestDOT(t *testing.T) {
	out := DOT(buildDiagram(t))

	for _, want := range []string{
		"digraph causeway {",
		"subgraph cluster_cause {",
		`"drought" [label="Prolonged drought"];`,
		`"drought" -> "crop failure" [penwidth=3];`,
		`"crop failure" -> "prices" [style=dashed];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func ExampleMermaid() {
	d := diagram.New()
	d.AddNode(diagram.Node{ID: "rain", Tier: diagram.TierCause})
	d.AddNode(diagram.Node{ID: "flood", Tier: diagram.TierEffect})
	d.AddEdge(diagram.Edge{From: "rain", To: "flood"})

	fmt.Print(Mermaid(d))
	// Output:
	// flowchart TB
	//     subgraph cause["Causes"]
	//         rain["rain"]
	//     end
	//     subgraph effect["Effects"]
	//         flood["flood"]
	//     end
	//     rain --> flood
}
