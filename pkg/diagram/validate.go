package diagram

import (
	"fmt"
	"sort"
)

// Severity grades a validation finding.
type Severity string

const (
	// SeverityError marks findings that make a document unusable as-is.
	SeverityError Severity = "error"
	// SeverityWarning marks findings the engine tolerates (cycles,
	// dangling edges) but authors probably want to fix.
	SeverityWarning Severity = "warning"
)

// Finding is one validation result.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Finding codes.
const (
	FindingDuplicateID      = "duplicate_id"
	FindingEmptyID          = "empty_id"
	FindingInvalidTier      = "invalid_tier"
	FindingInvalidStrength  = "invalid_strength"
	FindingInvalidEffect    = "invalid_effect"
	FindingDanglingEndpoint = "dangling_endpoint"
	FindingCycle            = "cycle"
)

// Validate checks a raw node/edge list and returns every finding, not
// just the first. Errors (duplicate or empty IDs, unknown tiers) make
// the document unusable; warnings (dangling edge endpoints, cycles,
// unknown strength/effect values) are tolerated downstream: layout
// skips dangling edges but never skips nodes, and cycles lay out
// without special handling.
func Validate(nodes []Node, edges []Edge) []Finding {
	var findings []Finding

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			findings = append(findings, Finding{SeverityError, FindingEmptyID, "node with empty id"})
			continue
		}
		if seen[n.ID] {
			findings = append(findings, Finding{SeverityError, FindingDuplicateID,
				fmt.Sprintf("duplicate node id %q", n.ID)})
		}
		seen[n.ID] = true
		if !n.Tier.Valid() {
			findings = append(findings, Finding{SeverityError, FindingInvalidTier,
				fmt.Sprintf("node %q has unknown tier %q", n.ID, n.Tier)})
		}
	}

	for _, e := range edges {
		if !seen[e.From] {
			findings = append(findings, Finding{SeverityWarning, FindingDanglingEndpoint,
				fmt.Sprintf("edge %s→%s references missing source %q", e.From, e.To, e.From)})
		}
		if !seen[e.To] {
			findings = append(findings, Finding{SeverityWarning, FindingDanglingEndpoint,
				fmt.Sprintf("edge %s→%s references missing target %q", e.From, e.To, e.To)})
		}
		if !e.Strength.Valid() {
			findings = append(findings, Finding{SeverityWarning, FindingInvalidStrength,
				fmt.Sprintf("edge %s→%s has unknown strength %q", e.From, e.To, e.Strength)})
		}
		if !e.Effect.Valid() {
			findings = append(findings, Finding{SeverityWarning, FindingInvalidEffect,
				fmt.Sprintf("edge %s→%s has unknown effect %q", e.From, e.To, e.Effect)})
		}
	}

	for _, cycle := range findCycles(nodes, edges) {
		findings = append(findings, Finding{SeverityWarning, FindingCycle,
			fmt.Sprintf("cycle detected through %q", cycle)})
	}

	return findings
}

// HasErrors reports whether any finding is severity error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

const (
	colorWhite = iota // unvisited
	colorGray         // on the current DFS path
	colorBlack        // fully explored
)

// findCycles returns one representative node per cycle, detected with
// depth-first search and white/gray/black coloring. A back edge to a
// gray node closes a cycle; the gray node is the representative.
func findCycles(nodes []Node, edges []Edge) []string {
	adjacency := make(map[string][]string)
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	for _, e := range edges {
		if present[e.From] && present[e.To] {
			adjacency[e.From] = append(adjacency[e.From], e.To)
		}
	}

	color := make(map[string]int, len(nodes))
	var reps []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = colorGray
		for _, next := range adjacency[id] {
			switch color[next] {
			case colorWhite:
				visit(next)
			case colorGray:
				reps = append(reps, next)
			}
		}
		color[id] = colorBlack
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		if color[id] == colorWhite {
			visit(id)
		}
	}
	return reps
}
