package diagram

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

var (
	// ErrInvalidNodeID is returned by [Diagram.AddNode] when the node ID
	// is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Diagram.AddNode] when a node
	// with the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidTier is returned by [Diagram.AddNode] when the node's
	// tier is not one of the four known values.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrUnknownSourceNode is returned by [Diagram.AddEdge] when the
	// From node does not exist in the diagram.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Diagram.AddEdge] when the
	// To node does not exist in the diagram.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by lookups (tracing, driver ranking)
	// when the requested node ID is not part of the diagram.
	ErrUnknownNode = errors.New("unknown node")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It typically carries source-document extras (descriptions, citation
// links) that flow through to renderers untouched. Metadata maps are
// never nil after AddNode.
type Metadata map[string]any

// Item is a sub-entry listed inside a node (a bullet under the node's
// label). Items only influence the geometry estimator: more items make
// a taller node, longer item text makes a wider one.
type Item struct {
	Label string `json:"label" yaml:"label" bson:"label" toml:"label"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty" bson:"text,omitempty" toml:"text,omitempty"`
}

// Node is a content item to be placed by the layout engine.
//
// The zero value is not usable: ID and Tier must be set before adding
// to a Diagram. Order distinguishes "unset" from zero via the pointer;
// when any node in a row sets Order, explicit ordering overrides the
// automatic ordering for that whole row.
type Node struct {
	ID       string   `json:"id" yaml:"id" bson:"id" toml:"id"`
	Tier     Tier     `json:"tier" yaml:"tier" bson:"tier" toml:"tier"`
	Subgroup string   `json:"subgroup,omitempty" yaml:"subgroup,omitempty" bson:"subgroup,omitempty" toml:"subgroup,omitempty"`
	Order    *int     `json:"order,omitempty" yaml:"order,omitempty" bson:"order,omitempty" toml:"order,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty" toml:"label,omitempty"`
	Items    []Item   `json:"items,omitempty" yaml:"items,omitempty" bson:"items,omitempty" toml:"items,omitempty"`
	Meta     Metadata `json:"meta,omitempty" yaml:"meta,omitempty" bson:"meta,omitempty" toml:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// SubgroupKey returns the node's subgroup, or "default" when none is set.
func (n Node) SubgroupKey() string {
	if n.Subgroup == "" {
		return DefaultSubgroup
	}
	return n.Subgroup
}

// HasOrder reports whether the node carries an explicit manual rank.
func (n Node) HasOrder() bool { return n.Order != nil }

// OrderValue returns the explicit rank, or 0 when unset. Check
// HasOrder first; a genuine rank of 0 is meaningful.
func (n Node) OrderValue() int {
	if n.Order == nil {
		return 0
	}
	return *n.Order
}

// DefaultSubgroup is the clustering key used for nodes without one.
const DefaultSubgroup = "default"

// Edge is a directed relation source → target. Both endpoints must
// reference existing node IDs when building through AddEdge; the
// layout engine separately tolerates dangling references in raw input
// by skipping the offending edge.
type Edge struct {
	From     string     `json:"from" yaml:"from" bson:"from" toml:"from"`
	To       string     `json:"to" yaml:"to" bson:"to" toml:"to"`
	Strength Strength   `json:"strength,omitempty" yaml:"strength,omitempty" bson:"strength,omitempty" toml:"strength,omitempty"`
	Effect   EffectKind `json:"effect,omitempty" yaml:"effect,omitempty" bson:"effect,omitempty" toml:"effect,omitempty"`
}

// Normalized returns a copy with empty strength/effect replaced by the
// documented defaults. Layout and styling call this so every edge they
// see carries concrete values.
func (e Edge) Normalized() Edge {
	if e.Strength == "" {
		e.Strength = DefaultStrength
	}
	if e.Effect == "" {
		e.Effect = DefaultEffect
	}
	return e
}

// Diagram is a causal graph indexed for layout: nodes by ID, adjacency
// in both directions, and nodes grouped by tier. Insertion order is
// preserved so identical documents produce identical layouts.
//
// The zero value is not usable - use New. Diagram is not safe for
// concurrent mutation.
type Diagram struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	tiers    map[Tier][]*Node
}

// New creates an empty diagram.
func New() *Diagram {
	return &Diagram{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		tiers:    make(map[Tier][]*Node),
	}
}

// AddNode adds a node and indexes it by tier.
// Returns ErrInvalidNodeID for an empty ID, ErrDuplicateNodeID when the
// ID is taken, and ErrInvalidTier for an unknown tier. The node's Meta
// field is initialized to an empty map if nil.
func (d *Diagram) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if !n.Tier.Valid() {
		return ErrInvalidTier
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	d.tiers[node.Tier] = append(d.tiers[node.Tier], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint
// is missing. Strength and effect are normalized to their defaults when
// empty. Self-edges and parallel edges are permitted; layout treats
// them as regular data.
func (d *Diagram) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	e = e.Normalized()
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID, if present.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// HasNode reports whether the ID exists in the diagram.
func (d *Diagram) HasNode(id string) bool {
	_, ok := d.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []*Node {
	out := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.nodes[id])
	}
	return out
}

// NodeList returns value copies of all nodes in insertion order, the
// shape the layout engine consumes.
func (d *Diagram) NodeList() []Node {
	out := make([]Node, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order. The returned slice is
// shared; callers must not modify it.
func (d *Diagram) Edges() []Edge { return d.edges }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Outgoing returns the IDs this node points at, in edge insertion order.
func (d *Diagram) Outgoing(id string) []string { return d.outgoing[id] }

// Incoming returns the IDs pointing at this node, in edge insertion order.
func (d *Diagram) Incoming(id string) []string { return d.incoming[id] }

// NodesInTier returns the nodes of one tier in insertion order.
func (d *Diagram) NodesInTier(t Tier) []*Node { return d.tiers[t] }

// Tiers returns the tiers that have at least one node, in drawing order.
func (d *Diagram) Tiers() []Tier {
	var present []Tier
	for _, t := range TierOrder {
		if len(d.tiers[t]) > 0 {
			present = append(present, t)
		}
	}
	return present
}

// Clone returns a deep copy. Node metadata maps are copied shallowly
// (values are shared), which matches how metadata flows through the
// pipeline: written once at load time, read afterwards.
func (d *Diagram) Clone() *Diagram {
	out := New()
	for _, id := range d.order {
		n := *d.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		if n.Order != nil {
			v := *n.Order
			n.Order = &v
		}
		n.Items = slices.Clone(n.Items)
		_ = out.AddNode(n)
	}
	for _, e := range d.edges {
		_ = out.AddEdge(e)
	}
	return out
}

// Document is the persisted and served envelope around a diagram's
// node/edge lists. The layout engine never sees documents; stores and
// the HTTP API do.
type Document struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty" bson:"_id,omitempty" toml:"id,omitempty"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty" toml:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty" bson:"created_at,omitempty" toml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty" bson:"updated_at,omitempty" toml:"updated_at,omitempty"`
	Nodes     []Node    `json:"nodes" yaml:"nodes" bson:"nodes" toml:"nodes"`
	Edges     []Edge    `json:"edges" yaml:"edges" bson:"edges" toml:"edges"`
}

// Build assembles a Diagram from the document's lists, surfacing the
// first structural error encountered (duplicate IDs, missing
// endpoints). Use [Validate] first when a full findings list is wanted.
func (doc Document) Build() (*Diagram, error) {
	d := New()
	for _, n := range doc.Nodes {
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := d.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}
	return d, nil
}
