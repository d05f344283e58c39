package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/causelab/causeway/pkg/diagram"
)

var dotStrengthWidths = map[diagram.Strength]string{
	diagram.StrengthWeak:   "1",
	diagram.StrengthMedium: "2",
	diagram.StrengthStrong: "3",
}

// DOT renders the diagram as Graphviz DOT with one cluster subgraph
// per tier. This export is solver-independent: it writes source text
// for any DOT consumer and never invokes a layout engine itself.
func DOT(d *diagram.Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph causeway {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, tier := range d.Tiers() {
		fmt.Fprintf(&buf, "  subgraph cluster_%s {\n", tier)
		fmt.Fprintf(&buf, "    label=%q;\n", mermaidTierTitles[tier])
		for _, n := range d.NodesInTier(tier) {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", n.ID, n.DisplayLabel())
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		attrs := dotEdgeAttrs(e)
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotEdgeAttrs(e diagram.Edge) []string {
	e = e.Normalized()
	var attrs []string
	if w, ok := dotStrengthWidths[e.Strength]; ok && e.Strength != diagram.DefaultStrength {
		attrs = append(attrs, "penwidth="+w)
	}
	switch e.Effect {
	case diagram.EffectDecreases:
		attrs = append(attrs, `color="red"`, "arrowhead=tee")
	case diagram.EffectMixed:
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}
