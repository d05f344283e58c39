package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/layout"
)

func testResult() layout.Result {
	return layout.Result{
		Nodes: []layout.PositionedNode{
			{ID: "group-cause", Kind: layout.KindContainer, Label: "Causes",
				X: 0, Y: 0, Width: 400, Height: 120},
			{ID: "a", Kind: layout.KindContent, Label: "Drought & heat",
				X: 40, Y: 44, Width: 150, Height: 46},
			{ID: "b", Kind: layout.KindContent, Label: "Prices",
				X: 40, Y: 200, Width: 150, Height: 46},
		},
		Edges: []layout.StyledEdge{
			{
				Edge:        diagram.Edge{From: "a", To: "b", Strength: diagram.StrengthStrong},
				StrokeWidth: 3.5,
				Color:       "#475569",
			},
		},
	}
}

func TestSVGStructure(t *testing.T) {
	svg := string(SVG(testResult()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"</svg>",
		">Causes</text>",
		"Drought &amp; heat",
		`marker-end="url(#arrow-475569)"`,
		`stroke-width="3.5"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestSVGContainersBeforeContent(t *testing.T) {
	svg := string(SVG(testResult()))
	containerAt := strings.Index(svg, ">Causes<")
	nodeAt := strings.Index(svg, "Drought")
	if containerAt < 0 || nodeAt < 0 {
		t.Fatal("missing expected elements")
	}
	if containerAt > nodeAt {
		t.Error("container drawn after content node")
	}
}

func TestSVGDeterministic(t *testing.T) {
	if !bytes.Equal(SVG(testResult()), SVG(testResult())) {
		t.Error("identical result rendered differently")
	}
}

func TestSVGTransparent(t *testing.T) {
	opaque := string(SVG(testResult()))
	transparent := string(SVG(testResult(), Transparent()))

	bg := `<rect width="100%" height="100%"`
	if !strings.Contains(opaque, bg) {
		t.Error("opaque render missing background rect")
	}
	if strings.Contains(transparent, bg) {
		t.Error("transparent render has background rect")
	}
}

func TestSVGTheme(t *testing.T) {
	dark := string(SVG(testResult(), WithTheme("dark")))
	if !strings.Contains(dark, DarkTheme.Background) {
		t.Error("dark theme background not applied")
	}

	// Unknown names keep the default.
	fallback := string(SVG(testResult(), WithTheme("neon")))
	if !strings.Contains(fallback, DefaultTheme.Background) {
		t.Error("unknown theme should fall back to default")
	}
}

func TestSVGLegendAndDrivers(t *testing.T) {
	svg := string(SVG(testResult(),
		WithLegend(),
		WithDrivers([]diagram.DriverRanking{{NodeID: "a", Label: "Drought", Score: 4.5}}),
	))

	for _, want := range []string{">strong<", ">mixed<", "Key drivers", "1. Drought", ">4.5<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestSVGMixedEdgeDash(t *testing.T) {
	res := testResult()
	res.Edges[0].Dash = "6,4"
	svg := string(SVG(res))
	if !strings.Contains(svg, `stroke-dasharray="6,4"`) {
		t.Error("dash pattern not emitted")
	}
}

func TestSVGEmptyResult(t *testing.T) {
	svg := string(SVG(layout.Result{}))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty result should still produce a valid document")
	}
}
