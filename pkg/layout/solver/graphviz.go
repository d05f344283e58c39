package solver

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// pixelsPerInch converts between graphviz inch coordinates and the
// pixel space the layout engine works in.
const pixelsPerInch = 96.0

// GraphvizSolver implements Solver on top of goccy/go-graphviz: it
// builds DOT text, runs the dot layout engine, renders to graphviz's
// "plain" output format and reads the node positions back.
//
// The zero value is ready to use. Instances hold no state between
// calls.
type GraphvizSolver struct{}

var _ Solver = (*GraphvizSolver)(nil)

// Solve lays out the graph with the dot engine and returns top-left
// pixel positions for every node.
func (s *GraphvizSolver) Solve(ctx context.Context, g Graph) (Positions, error) {
	if len(g.Nodes) == 0 {
		return Positions{}, nil
	}

	dot := BuildDOT(g)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.Format("plain"), &buf); err != nil {
		return nil, fmt.Errorf("solve layout: %w", err)
	}

	return ParsePlain(buf.String())
}

// BuildDOT converts a solver graph to DOT text. Exported so tests can
// assert on constraint wiring without running graphviz.
func BuildDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")

	splines := "curved"
	if g.Routing == RoutingStraight {
		splines = "line"
	}
	fmt.Fprintf(&buf, "  splines=%s;\n", splines)

	if g.RankSep > 0 {
		fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(g.RankSep))
	}
	if g.NodeSep > 0 {
		fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(g.NodeSep))
	}
	if g.TreeRanking {
		// Single global ranking pass keeps cross-edge-heavy graphs
		// from fanning out into very wide ranks.
		buf.WriteString("  newrank=true;\n")
	}
	buf.WriteString("  node [shape=box, fixedsize=true];\n\n")

	var first, last []string
	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [width=%s, height=%s];\n", n.ID, inches(n.W), inches(n.H))
		if n.PinFirst {
			first = append(first, n.ID)
		}
		if n.PinLast {
			last = append(last, n.ID)
		}
	}

	writeRankGroup(&buf, "min", first)
	writeRankGroup(&buf, "max", last)

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{fmt.Sprintf("weight=%d", e.Weight)}
		if e.MinLen > 0 {
			attrs = append(attrs, fmt.Sprintf("minlen=%d", e.MinLen))
		}
		if e.Invisible {
			attrs = append(attrs, "style=invis")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeRankGroup(buf *bytes.Buffer, rank string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(buf, "  { rank=%s;", rank)
	for _, id := range ids {
		fmt.Fprintf(buf, " %q;", id)
	}
	buf.WriteString(" }\n")
}

// inches formats a pixel measure as graphviz inches.
func inches(px float64) string {
	return strconv.FormatFloat(px/pixelsPerInch, 'f', 4, 64)
}

// ParsePlain reads graphviz "plain" output and returns top-left pixel
// positions in screen orientation. Plain coordinates are in inches
// with the origin at the bottom-left and node positions at box
// centers; this converts all three conventions at once.
//
// Format reference: the first line is "graph scale width height",
// node lines are "node name x y width height …". Edge and stop lines
// are ignored.
func ParsePlain(plain string) (Positions, error) {
	pos := make(Positions)
	var graphHeight float64

	for _, line := range strings.Split(plain, "\n") {
		fields := splitPlainFields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed graph line: %q", line)
			}
			h, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("graph height: %w", err)
			}
			graphHeight = h
		case "node":
			if len(fields) < 6 {
				return nil, fmt.Errorf("malformed node line: %q", line)
			}
			x, err1 := strconv.ParseFloat(fields[2], 64)
			y, err2 := strconv.ParseFloat(fields[3], 64)
			w, err3 := strconv.ParseFloat(fields[4], 64)
			h, err4 := strconv.ParseFloat(fields[5], 64)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				return nil, fmt.Errorf("malformed node line: %q", line)
			}
			pos[fields[1]] = Point{
				X: (x - w/2) * pixelsPerInch,
				Y: (graphHeight - y - h/2) * pixelsPerInch,
			}
		}
	}
	return pos, nil
}

// splitPlainFields splits one plain-format line, honoring the quoting
// graphviz applies to names containing whitespace.
func splitPlainFields(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
		started  bool
	)
	flush := func() {
		if started {
			fields = append(fields, current.String())
			current.Reset()
			started = false
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			started = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return fields
}
