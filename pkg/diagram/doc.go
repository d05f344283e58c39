// Package diagram provides the core data model for causal diagrams:
// directed graphs whose nodes belong to ordered tiers and whose edges
// carry strength and valence metadata.
//
// # Overview
//
// Causeway renders cause-and-effect diagrams as tiered drawings where
// causes sit above the intermediates they feed and effects sit at the
// bottom. This package provides the graph structure those drawings are
// computed from: nodes classified into tiers (leaf < cause <
// intermediate < effect), optional subgroup keys for visual clustering,
// and directed edges weighted by strength (weak/medium/strong) and
// signed by effect (increases/decreases/mixed).
//
// # Basic Usage
//
// Create a diagram with [New], add nodes with [Diagram.AddNode], and
// edges with [Diagram.AddEdge]. Nodes must have unique IDs and a valid
// tier; edges can only connect existing nodes:
//
//	d := diagram.New()
//	d.AddNode(diagram.Node{ID: "smoking", Tier: diagram.TierCause})
//	d.AddNode(diagram.Node{ID: "cancer", Tier: diagram.TierEffect})
//	d.AddEdge(diagram.Edge{From: "smoking", To: "cancer", Strength: diagram.StrengthStrong})
//
// Query structure with [Diagram.Outgoing], [Diagram.Incoming],
// [Diagram.NodesInTier] and related methods. Use [Validate] to check a
// raw node/edge list before layout; validation reports findings rather
// than failing on the first problem, since authors iterate on diagram
// documents interactively.
//
// # Tiers
//
// A tier is an ordinal rank enforced as vertical layer order by every
// layout strategy. Tiers are string-typed for clean serialization; use
// [Tier.Ordinal] for comparisons. The tier of a node is immutable
// input: layout never reclassifies a node.
//
// # Cycles
//
// Causal diagrams are usually acyclic but feedback loops occur in real
// source material. Cycles are therefore detected (three-color DFS in
// [Validate]) and reported as warnings, not errors: a cyclic diagram
// still lays out, it just isn't optimized for.
//
// # Concurrency
//
// Diagram instances are not safe for concurrent mutation. Read-only
// use from multiple goroutines is fine, which is what the layout
// engine relies on when laying out several documents in parallel.
package diagram
