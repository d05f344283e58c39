package layout

import (
	"reflect"
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
)

func TestStyleEdges(t *testing.T) {
	tests := []struct {
		name      string
		edge      diagram.Edge
		wantWidth float64
		wantColor string
		wantDash  string
	}{
		{
			name:      "strong increases",
			edge:      diagram.Edge{From: "a", To: "b", Strength: diagram.StrengthStrong, Effect: diagram.EffectIncreases},
			wantWidth: strokeStrong,
			wantColor: colorIncreases,
		},
		{
			name:      "weak decreases",
			edge:      diagram.Edge{From: "a", To: "b", Strength: diagram.StrengthWeak, Effect: diagram.EffectDecreases},
			wantWidth: strokeWeak,
			wantColor: colorDecreases,
		},
		{
			name:      "mixed gets dash",
			edge:      diagram.Edge{From: "a", To: "b", Strength: diagram.StrengthMedium, Effect: diagram.EffectMixed},
			wantWidth: strokeMedium,
			wantColor: colorMixed,
			wantDash:  dashMixed,
		},
		{
			name:      "empty fields normalize to defaults",
			edge:      diagram.Edge{From: "a", To: "b"},
			wantWidth: strokeMedium,
			wantColor: colorIncreases,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StyleEdges([]diagram.Edge{tt.edge})
			if len(got) != 1 {
				t.Fatalf("want 1 styled edge, got %d", len(got))
			}
			s := got[0]
			if s.StrokeWidth != tt.wantWidth {
				t.Errorf("StrokeWidth = %g, want %g", s.StrokeWidth, tt.wantWidth)
			}
			if s.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", s.Color, tt.wantColor)
			}
			if s.Dash != tt.wantDash {
				t.Errorf("Dash = %q, want %q", s.Dash, tt.wantDash)
			}
		})
	}
}

func TestStyleEdgesPure(t *testing.T) {
	edges := []diagram.Edge{
		{From: "a", To: "b", Strength: diagram.StrengthStrong},
		{From: "b", To: "c", Effect: diagram.EffectMixed},
	}
	first := StyleEdges(edges)
	second := StyleEdges(edges)
	if !reflect.DeepEqual(first, second) {
		t.Error("styling same input twice gave different output")
	}
}
