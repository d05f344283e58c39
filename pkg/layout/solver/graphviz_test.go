package solver

import (
	"math"
	"strings"
	"testing"
)

func TestBuildDOTRankConstraints(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "a", W: 96, H: 48, PinFirst: true},
			{ID: "b", W: 96, H: 48},
			{ID: "c", W: 96, H: 48, PinLast: true},
		},
		Edges: []Edge{
			{From: "a", To: "b", Weight: 2},
			{From: "b", To: "c", Weight: 1},
		},
	}

	dot := BuildDOT(g)

	for _, want := range []string{
		"rankdir=TB",
		`{ rank=min; "a"; }`,
		`{ rank=max; "c"; }`,
		`"a" [width=1.0000, height=0.5000];`,
		`"a" -> "b" [weight=2];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestBuildDOTSyntheticEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "anchor", W: 96, H: 48}, {ID: "deep", W: 96, H: 48}},
		Edges: []Edge{{From: "anchor", To: "deep", Weight: 0, MinLen: 4, Invisible: true}},
	}

	dot := BuildDOT(g)

	want := `"anchor" -> "deep" [weight=0, minlen=4, style=invis];`
	if !strings.Contains(dot, want) {
		t.Errorf("DOT missing %q:\n%s", want, dot)
	}
}

func TestBuildDOTRouting(t *testing.T) {
	curved := BuildDOT(Graph{Nodes: []Node{{ID: "a"}}, Routing: RoutingCurved})
	if !strings.Contains(curved, "splines=curved") {
		t.Errorf("curved routing not requested:\n%s", curved)
	}

	straight := BuildDOT(Graph{Nodes: []Node{{ID: "a"}}, Routing: RoutingStraight})
	if !strings.Contains(straight, "splines=line") {
		t.Errorf("straight routing not requested:\n%s", straight)
	}
}

func TestParsePlain(t *testing.T) {
	// Two nodes in a 2x3 inch canvas: "top" centered at (1, 2.5) and
	// "bottom" at (1, 0.5), each 1x0.5 inches.
	plain := strings.Join([]string{
		"graph 1.0 2.0 3.0",
		"node top 1.0 2.5 1.0 0.5 top solid box black white",
		"node bottom 1.0 0.5 1.0 0.5 bottom solid box black white",
		"edge top bottom 2 1.0 2.0 1.0 1.0 solid black",
		"stop",
	}, "\n")

	pos, err := ParsePlain(plain)
	if err != nil {
		t.Fatalf("ParsePlain: %v", err)
	}
	if len(pos) != 2 {
		t.Fatalf("got %d positions, want 2", len(pos))
	}

	// Y flips: "top" (high graphviz Y) must land above "bottom".
	top, bottom := pos["top"], pos["bottom"]
	if top.Y >= bottom.Y {
		t.Errorf("top.Y = %.1f not above bottom.Y = %.1f", top.Y, bottom.Y)
	}

	// Center (1, 2.5) with size 1x0.5 → top-left (0.5, 0.25) inches.
	wantX, wantY := 0.5*pixelsPerInch, 0.25*pixelsPerInch
	if math.Abs(top.X-wantX) > 1e-6 || math.Abs(top.Y-wantY) > 1e-6 {
		t.Errorf("top = (%.2f, %.2f), want (%.2f, %.2f)", top.X, top.Y, wantX, wantY)
	}
}

func TestParsePlainQuotedNames(t *testing.T) {
	plain := "graph 1.0 2.0 2.0\nnode \"air quality\" 1.0 1.0 1.0 0.5 label solid box black white\nstop"

	pos, err := ParsePlain(plain)
	if err != nil {
		t.Fatalf("ParsePlain: %v", err)
	}
	if _, ok := pos["air quality"]; !ok {
		t.Errorf("quoted node name not parsed: %v", pos)
	}
}

func TestParsePlainMalformed(t *testing.T) {
	if _, err := ParsePlain("node only 1.0"); err == nil {
		t.Error("expected error for malformed node line")
	}
}
