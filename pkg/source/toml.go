package source

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/causelab/causeway/pkg/diagram"
)

// TOMLSource parses documents authored as TOML:
//
//	name = "supply shock"
//
//	[[nodes]]
//	id = "drought"
//	tier = "cause"
//
//	[[edges]]
//	from = "drought"
//	to = "prices"
type TOMLSource struct{}

// Type returns "toml".
func (s *TOMLSource) Type() string { return "toml" }

// Supports matches .toml files.
func (s *TOMLSource) Supports(filename string) bool {
	return hasExt(filename, ".toml")
}

// Parse decodes a TOML document.
func (s *TOMLSource) Parse(r io.Reader) (diagram.Document, error) {
	var doc diagram.Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return diagram.Document{}, parseError("toml", err)
	}
	return doc, nil
}
