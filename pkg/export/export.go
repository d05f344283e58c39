// Package export serializes the input graph to human-readable
// structured text: Mermaid flowcharts and Graphviz DOT. Exports
// describe the graph, not a computed layout - positions never appear,
// so the output is stable across layout algorithm changes.
package export

import (
	"github.com/causelab/causeway/pkg/errors"
)

// Format names accepted by [Write].
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDOT:     true,
}

// ErrUnknownFormat reports an unsupported export format name.
func ErrUnknownFormat(format string) error {
	return errors.New(errors.ErrCodeConfig,
		"unknown export format %q (must be one of: mermaid, dot)", format)
}
