package layout

import "github.com/causelab/causeway/pkg/diagram"

// Stroke widths per edge strength. Tuned together with the renderer's
// default density; strong links should read at arm's length.
const (
	strokeStrong = 3.5
	strokeMedium = 2.0
	strokeWeak   = 1.2
)

// Edge colors and dash per effect kind. Decreasing links are tinted
// red so inhibitions stand out; mixed links dash because their sign is
// ambiguous.
const (
	colorIncreases = "#475569"
	colorDecreases = "#dc2626"
	colorMixed     = "#b45309"
	dashMixed      = "6,4"
)

// StyleEdges derives stroke weight, color, and dash for every edge
// from its strength and effect. Pure and idempotent: styling depends
// only on the edge data, never on positions or on prior styling, so
// it can run on edges independent of which strategy placed the nodes.
func StyleEdges(edges []diagram.Edge) []StyledEdge {
	out := make([]StyledEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, styleEdge(e))
	}
	return out
}

func styleEdge(e diagram.Edge) StyledEdge {
	e = e.Normalized()
	s := StyledEdge{Edge: e}

	switch e.Strength {
	case diagram.StrengthStrong:
		s.StrokeWidth = strokeStrong
	case diagram.StrengthWeak:
		s.StrokeWidth = strokeWeak
	default:
		s.StrokeWidth = strokeMedium
	}

	switch e.Effect {
	case diagram.EffectDecreases:
		s.Color = colorDecreases
	case diagram.EffectMixed:
		s.Color = colorMixed
		s.Dash = dashMixed
	default:
		s.Color = colorIncreases
	}
	return s
}
