// Package trace walks causal paths through a diagram: everything
// upstream that feeds a focus node and everything downstream it feeds.
// Renderers use the result to highlight the active path; the CLI prints
// it as a report. Tracing is read-only and never part of layout.
package trace

import (
	"fmt"
	"sort"

	"github.com/causelab/causeway/pkg/diagram"
)

// Direction selects which side of the focus node to walk.
type Direction string

const (
	// DirectionBoth walks upstream and downstream (the default).
	DirectionBoth Direction = "both"
	// DirectionUpstream walks incoming edges only.
	DirectionUpstream Direction = "upstream"
	// DirectionDownstream walks outgoing edges only.
	DirectionDownstream Direction = "downstream"
)

// Options configures a trace.
type Options struct {
	// Direction defaults to DirectionBoth.
	Direction Direction
	// MaxDepth bounds the walk on each side; 0 means unbounded.
	MaxDepth int
}

// Path is the result of tracing one focus node.
type Path struct {
	Focus string `json:"focus"`
	// Upstream lists ancestor node IDs in breadth-first order, nearest
	// first. Downstream likewise for descendants.
	Upstream   []string `json:"upstream,omitempty"`
	Downstream []string `json:"downstream,omitempty"`
	// Edges holds every edge on the traced paths, upstream then
	// downstream, each in breadth-first discovery order.
	Edges []diagram.Edge `json:"edges,omitempty"`
}

// Touches reports whether the given node ID is on the traced path
// (including the focus itself).
func (p Path) Touches(id string) bool {
	if id == p.Focus {
		return true
	}
	for _, u := range p.Upstream {
		if u == id {
			return true
		}
	}
	for _, d := range p.Downstream {
		if d == id {
			return true
		}
	}
	return false
}

// Trace walks the diagram from the focus node in both directions (or
// one, per opts) and returns the touched nodes and edges. Returns
// diagram.ErrUnknownNode when the focus is not part of the diagram.
//
// Frontiers are expanded breadth-first with each level sorted, so the
// same diagram always produces the same path. The CLI and the API
// both rely on stable output.
func Trace(d *diagram.Diagram, focus string, opts Options) (Path, error) {
	if !d.HasNode(focus) {
		return Path{}, fmt.Errorf("trace %q: %w", focus, diagram.ErrUnknownNode)
	}
	if opts.Direction == "" {
		opts.Direction = DirectionBoth
	}

	p := Path{Focus: focus}
	if opts.Direction == DirectionBoth || opts.Direction == DirectionUpstream {
		nodes, edges := walk(d, focus, opts.MaxDepth, d.Incoming, flipEdge)
		p.Upstream = nodes
		p.Edges = append(p.Edges, edges...)
	}
	if opts.Direction == DirectionBoth || opts.Direction == DirectionDownstream {
		nodes, edges := walk(d, focus, opts.MaxDepth, d.Outgoing, keepEdge)
		p.Downstream = nodes
		p.Edges = append(p.Edges, edges...)
	}
	return p, nil
}

// flipEdge reconstructs the stored direction for an upstream step:
// walking incoming from "to" lands on "from", and the diagram's edge
// runs from→to.
func flipEdge(step, neighbor string) (string, string) { return neighbor, step }

func keepEdge(step, neighbor string) (string, string) { return step, neighbor }

// walk expands breadth-first along the given adjacency accessor.
// orient maps (current node, neighbor) to the (from, to) pair of the
// original edge so both directions report real edges.
func walk(d *diagram.Diagram, focus string, maxDepth int, adjacent func(string) []string, orient func(string, string) (string, string)) ([]string, []diagram.Edge) {
	var (
		order []string
		edges []diagram.Edge
	)
	visited := map[string]bool{focus: true}
	seenEdge := make(map[[2]string]bool)
	byPair := edgesByPair(d)

	frontier := []string{focus}
	for depth := 0; len(frontier) > 0 && (maxDepth == 0 || depth < maxDepth); depth++ {
		var next []string
		for _, id := range frontier {
			neighbors := uniqueSorted(adjacent(id))
			for _, nb := range neighbors {
				from, to := orient(id, nb)
				pair := [2]string{from, to}
				if !seenEdge[pair] {
					seenEdge[pair] = true
					edges = append(edges, byPair[pair]...)
				}
				if !visited[nb] {
					visited[nb] = true
					order = append(order, nb)
					next = append(next, nb)
				}
			}
		}
		frontier = next
	}
	return order, edges
}

func edgesByPair(d *diagram.Diagram) map[[2]string][]diagram.Edge {
	byPair := make(map[[2]string][]diagram.Edge, d.EdgeCount())
	for _, e := range d.Edges() {
		key := [2]string{e.From, e.To}
		byPair[key] = append(byPair[key], e)
	}
	return byPair
}

func uniqueSorted(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	dedup := out[:1]
	for _, id := range out[1:] {
		if id != dedup[len(dedup)-1] {
			dedup = append(dedup, id)
		}
	}
	return dedup
}
