// Package render turns a computed layout into display artifacts: an
// SVG writer over layout.Result plus PNG and PDF conversion through
// rsvg-convert. Rendering is a pure function of the result and the
// options; identical inputs produce identical bytes.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/layout"
)

const (
	nodeCornerRadius = 6.0
	labelFontSize    = 13.0
	itemFontSize     = 11.0
	headerFontSize   = 12.0

	legendHeight  = 52.0
	driversWidth  = 260.0
	driversRowGap = 22.0
)

// Option configures one SVG rendering.
type Option func(*renderer)

type renderer struct {
	theme       Theme
	legend      bool
	drivers     []diagram.DriverRanking
	transparent bool
}

// WithTheme selects a theme; unknown names keep the default.
func WithTheme(name string) Option {
	return func(r *renderer) {
		if t, ok := Themes[name]; ok {
			r.theme = t
		}
	}
}

// WithLegend adds the strength and valence legend below the graph.
func WithLegend() Option { return func(r *renderer) { r.legend = true } }

// WithDrivers adds a key-drivers panel listing the given rankings.
func WithDrivers(rankings []diagram.DriverRanking) Option {
	return func(r *renderer) { r.drivers = rankings }
}

// Transparent omits the background rectangle.
func Transparent() Option { return func(r *renderer) { r.transparent = true } }

// SVG renders the layout result as a standalone SVG document.
func SVG(res layout.Result, opts ...Option) []byte {
	r := renderer{theme: DefaultTheme}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := res.Bounds()
	if width == 0 {
		width, height = 200, 100
	}
	canvasW, canvasH := width, height
	if r.legend {
		canvasH += legendHeight
	}
	if len(r.drivers) > 0 {
		canvasW += driversWidth
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		canvasW, canvasH, canvasW, canvasH)

	writeArrowDefs(&buf, res.Edges)

	if !r.transparent {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)
	}

	// Containers first so content draws on top.
	for _, c := range res.Containers() {
		r.writeContainer(&buf, c)
	}
	r.writeEdges(&buf, res)
	for _, n := range res.ContentNodes() {
		r.writeNode(&buf, n)
	}

	if r.legend {
		r.writeLegend(&buf, height)
	}
	if len(r.drivers) > 0 {
		r.writeDrivers(&buf, width)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeArrowDefs emits one arrowhead marker per distinct edge color.
func writeArrowDefs(buf *bytes.Buffer, edges []layout.StyledEdge) {
	seen := make(map[string]bool)
	buf.WriteString("  <defs>\n")
	for _, e := range edges {
		if seen[e.Color] {
			continue
		}
		seen[e.Color] = true
		fmt.Fprintf(buf,
			`    <marker id="arrow-%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n",
			markerID(e.Color), e.Color)
	}
	buf.WriteString("  </defs>\n")
}

func markerID(color string) string {
	return strings.TrimPrefix(color, "#")
}

func (r *renderer) writeContainer(buf *bytes.Buffer, c layout.PositionedNode) {
	fill := c.Fill
	if fill == "" {
		fill = r.theme.TierFill
	}
	stroke := c.Stroke
	if stroke == "" {
		stroke = r.theme.ContainerStroke
	}
	header := c.Header
	if header == "" {
		header = r.theme.HeaderText
	}

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.0f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		c.X, c.Y, c.Width, c.Height, nodeCornerRadius, fill, stroke)
	if c.Label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-weight="600" fill="%s">%s</text>`+"\n",
			c.X+10, c.Y+19, headerFontSize, header, html.EscapeString(c.Label))
	}
}

func (r *renderer) writeNode(buf *bytes.Buffer, n layout.PositionedNode) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.0f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		n.X, n.Y, n.Width, n.Height, nodeCornerRadius, r.theme.NodeFill, r.theme.NodeStroke)

	labelY := n.Y + 20
	if len(n.Items) == 0 {
		labelY = n.CenterY() + labelFontSize/3
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" fill="%s">%s</text>`+"\n",
		n.CenterX(), labelY, labelFontSize, r.theme.Text, html.EscapeString(n.Label))

	for i, item := range n.Items {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" fill="%s">%s</text>`+"\n",
			n.X+12, labelY+16+float64(i)*15, itemFontSize, r.theme.MutedText, html.EscapeString(item.Label))
	}
}

func (r *renderer) writeEdges(buf *bytes.Buffer, res layout.Result) {
	for _, e := range res.Edges {
		from, okFrom := res.Node(e.From)
		to, okTo := res.Node(e.To)
		if !okFrom || !okTo {
			continue
		}

		x1, y1 := from.CenterX(), from.Bottom()
		x2, y2 := to.CenterX(), to.Y

		var path string
		if y2 > y1 {
			// Downward edge: cubic with vertically offset control
			// points so the curve leaves and enters perpendicular to
			// the rows.
			bend := (y2 - y1) * 0.4
			path = fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
				x1, y1, x1, y1+bend, x2, y2-bend, x2, y2)
		} else {
			// Same-row or upward edge: straight line between box
			// centers keeps it legible.
			path = fmt.Sprintf("M %.1f %.1f L %.1f %.1f", x1, y1, x2, y2)
		}

		dash := ""
		if e.Dash != "" {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, e.Dash)
		}
		fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.1f"%s marker-end="url(#arrow-%s)"/>`+"\n",
			path, e.Color, e.StrokeWidth, dash, markerID(e.Color))
	}
}

func (r *renderer) writeLegend(buf *bytes.Buffer, graphHeight float64) {
	y := graphHeight + 20
	x := 40.0

	entries := []struct {
		label string
		width float64
		color string
		dash  string
	}{
		{"strong", 3.5, "#475569", ""},
		{"medium", 2.0, "#475569", ""},
		{"weak", 1.2, "#475569", ""},
		{"decreases", 2.0, "#dc2626", ""},
		{"mixed", 2.0, "#b45309", "6,4"},
	}

	for _, entry := range entries {
		dash := ""
		if entry.dash != "" {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, entry.dash)
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			x, y, x+36, y, entry.color, entry.width, dash)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
			x+42, y+4, r.theme.MutedText, entry.label)
		x += 36 + 42 + float64(len(entry.label))*7 + 24
	}
}

func (r *renderer) writeDrivers(buf *bytes.Buffer, graphWidth float64) {
	x := graphWidth + 16
	y := 40.0

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="13" font-weight="600" fill="%s">Key drivers</text>`+"\n",
		x, y, r.theme.Text)
	for i, d := range r.drivers {
		rowY := y + 24 + float64(i)*driversRowGap
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" fill="%s">%d. %s</text>`+"\n",
			x, rowY, r.theme.Text, i+1, html.EscapeString(d.Label))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" text-anchor="end" fill="%s">%.1f</text>`+"\n",
			x+driversWidth-32, rowY, r.theme.MutedText, d.Score)
	}
}
