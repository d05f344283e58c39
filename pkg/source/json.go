package source

import (
	"encoding/json"
	"io"

	"github.com/causelab/causeway/pkg/diagram"
)

// JSONSource parses documents in the same shape the HTTP API serves.
type JSONSource struct{}

// Type returns "json".
func (s *JSONSource) Type() string { return "json" }

// Supports matches .json files.
func (s *JSONSource) Supports(filename string) bool {
	return hasExt(filename, ".json")
}

// Parse decodes a JSON document.
func (s *JSONSource) Parse(r io.Reader) (diagram.Document, error) {
	var doc diagram.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return diagram.Document{}, parseError("json", err)
	}
	return doc, nil
}
