package layout

import "github.com/causelab/causeway/pkg/diagram"

// Kind distinguishes content nodes from synthetic container boxes.
type Kind string

const (
	// KindContent marks a node from the input diagram.
	KindContent Kind = "content"
	// KindContainer marks a synthetic bounding box emitted by the
	// layout. Containers exist only in output, never in input.
	KindContainer Kind = "container"
)

// Container ID prefixes. Tier containers are "group-<tier>", subgroup
// and cluster containers are "cluster-<key>".
const (
	GroupIDPrefix   = "group-"
	ClusterIDPrefix = "cluster-"
)

// PositionedNode is one placed element: an input node with absolute
// pixel coordinates, or a container box. X/Y is the top-left corner;
// Y grows downward.
type PositionedNode struct {
	ID       string       `json:"id"`
	Kind     Kind         `json:"kind"`
	Label    string       `json:"label,omitempty"`
	Tier     diagram.Tier `json:"tier,omitempty"`
	Subgroup string       `json:"subgroup,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Items carries the node's sub-entries through to renderers.
	Items []diagram.Item `json:"items,omitempty"`

	// Container styling; empty for content nodes and unstyled
	// containers.
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
	Header string `json:"header,omitempty"`
}

// CenterX returns the horizontal center of the node's box.
func (n PositionedNode) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node's box.
func (n PositionedNode) CenterY() float64 { return n.Y + n.Height/2 }

// Bottom returns the Y coordinate of the node's lower edge.
func (n PositionedNode) Bottom() float64 { return n.Y + n.Height }

// StyledEdge is an input edge annotated with stroke styling derived
// from its strength and effect. Styling never depends on positions.
type StyledEdge struct {
	diagram.Edge

	StrokeWidth float64 `json:"stroke_width"`
	Color       string  `json:"color"`
	// Dash is an SVG dash pattern; empty means solid.
	Dash string `json:"dash,omitempty"`
}

// Result is the output of one layout call. Nodes lists container
// nodes first so renderers can z-order them beneath content; every
// input node ID appears exactly once among the content nodes.
type Result struct {
	Nodes []PositionedNode `json:"nodes"`
	Edges []StyledEdge     `json:"edges"`
}

// ContentNodes returns the positioned input nodes, in output order.
func (r Result) ContentNodes() []PositionedNode {
	return r.ofKind(KindContent)
}

// Containers returns the synthetic container nodes, in output order.
func (r Result) Containers() []PositionedNode {
	return r.ofKind(KindContainer)
}

func (r Result) ofKind(k Kind) []PositionedNode {
	var out []PositionedNode
	for _, n := range r.Nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// Node returns the positioned node with the given ID, if present.
func (r Result) Node(id string) (PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Bounds returns the width and height of the smallest origin-anchored
// frame containing every node, plus a small margin. Renderers use it
// to size the canvas.
func (r Result) Bounds() (width, height float64) {
	const margin = 40.0
	for _, n := range r.Nodes {
		if right := n.X + n.Width; right > width {
			width = right
		}
		if bottom := n.Bottom(); bottom > height {
			height = bottom
		}
	}
	if width > 0 {
		width += margin
		height += margin
	}
	return width, height
}
