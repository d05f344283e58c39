// Package pkg provides the core libraries for Causeway causal-diagram layout.
//
// # Overview
//
// Causeway turns a declarative description of a causal system into a
// positioned, styled diagram: causes at the top, effects at the bottom,
// intermediates in between. The pkg directory is organized into five
// main areas:
//
//  1. [diagram] - Domain model (nodes, edges, tiers, validation, tracing)
//  2. [layout] - Positioning engines and the external solver bridge
//  3. [render] / [export] - SVG, PNG, PDF artifacts and textual formats
//  4. [source] / [store] - Document loading and persistence
//  5. [pipeline] - Orchestration (load, validate, layout, render) with caching
//
// # Architecture
//
// The typical data flow through Causeway:
//
//	YAML/JSON/TOML document or remote URL
//	         |
//	      [source]  load and decode
//	         |
//	     [diagram]  validate, assemble the graph
//	         |
//	      [layout]  assign tiers, order, position
//	         |
//	 [render]/[export]  SVG, PNG, PDF, Mermaid, DOT
//
// The [pipeline] package drives this flow end to end and caches each
// stage through [cache]. Cross-cutting concerns live in [errors] (coded
// errors with user-facing messages), [httputil] (retrying HTTP client),
// and [observability] (stage, cache, and HTTP hooks).
package pkg
