package source

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/causelab/causeway/pkg/diagram"
)

// YAMLSource parses the primary authoring format:
//
//	name: supply shock
//	nodes:
//	  - id: drought
//	    tier: cause
//	  - id: prices
//	    tier: effect
//	edges:
//	  - from: drought
//	    to: prices
//	    strength: strong
type YAMLSource struct{}

// Type returns "yaml".
func (s *YAMLSource) Type() string { return "yaml" }

// Supports matches .yaml and .yml files.
func (s *YAMLSource) Supports(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

// Parse decodes a YAML document.
func (s *YAMLSource) Parse(r io.Reader) (diagram.Document, error) {
	var doc diagram.Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return diagram.Document{}, parseError("yaml", err)
	}
	return doc, nil
}
