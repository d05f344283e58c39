package export

import (
	"fmt"
	"strings"

	"github.com/causelab/causeway/pkg/diagram"
)

// Tier subgraph titles in the Mermaid output.
var mermaidTierTitles = map[diagram.Tier]string{
	diagram.TierLeaf:         "Background",
	diagram.TierCause:        "Causes",
	diagram.TierIntermediate: "Mechanisms",
	diagram.TierEffect:       "Effects",
}

// Mermaid renders the diagram as a top-down Mermaid flowchart with one
// subgraph per tier. Edge labels carry strength and valence; mixed
// links use a dotted arrow. Output order follows the diagram's
// insertion order, so identical documents export identically.
func Mermaid(d *diagram.Diagram) string {
	var b strings.Builder
	b.WriteString("flowchart TB\n")

	for _, tier := range d.Tiers() {
		fmt.Fprintf(&b, "    subgraph %s[%q]\n", mermaidID(string(tier)), mermaidTierTitles[tier])
		for _, n := range d.NodesInTier(tier) {
			fmt.Fprintf(&b, "        %s[%q]\n", mermaidID(n.ID), n.DisplayLabel())
		}
		b.WriteString("    end\n")
	}

	for _, e := range d.Edges() {
		arrow := "-->"
		if e.Effect == diagram.EffectMixed {
			arrow = "-.->"
		}
		label := edgeLabel(e)
		if label != "" {
			fmt.Fprintf(&b, "    %s %s|%q| %s\n", mermaidID(e.From), arrow, label, mermaidID(e.To))
		} else {
			fmt.Fprintf(&b, "    %s %s %s\n", mermaidID(e.From), arrow, mermaidID(e.To))
		}
	}

	return b.String()
}

// edgeLabel summarizes a normalized edge; default strength and valence
// stay unlabeled to keep common diagrams uncluttered.
func edgeLabel(e diagram.Edge) string {
	e = e.Normalized()
	var parts []string
	if e.Strength != diagram.DefaultStrength {
		parts = append(parts, string(e.Strength))
	}
	if e.Effect != diagram.DefaultEffect {
		parts = append(parts, string(e.Effect))
	}
	return strings.Join(parts, " ")
}

// mermaidID makes node ids safe as Mermaid identifiers. Mermaid ids
// cannot carry spaces or most punctuation; everything outside
// [A-Za-z0-9_] maps to underscore.
func mermaidID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
