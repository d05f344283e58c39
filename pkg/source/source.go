// Package source loads diagram documents from files, readers, and
// remote URLs. Formats register behind one interface and are detected
// by filename, so callers never switch on extensions themselves.
package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
)

// Source parses one document format.
type Source interface {
	// Type returns the format name: yaml, json, or toml.
	Type() string

	// Supports reports whether the filename looks like this format.
	Supports(filename string) bool

	// Parse decodes a document from r.
	Parse(r io.Reader) (diagram.Document, error)
}

// Sources returns the registered formats in detection order.
func Sources() []Source {
	return []Source{&YAMLSource{}, &JSONSource{}, &TOMLSource{}}
}

// Detect picks the source matching the filename. With no sources
// given it consults the full registry. Unknown extensions are
// configuration errors.
func Detect(filename string, sources ...Source) (Source, error) {
	if len(sources) == 0 {
		sources = Sources()
	}
	for _, s := range sources {
		if s.Supports(filename) {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeConfig,
		"unsupported document format %q (supported: .yaml, .yml, .json, .toml)", filepath.Ext(filename))
}

// Load reads and parses the document at path, detecting the format
// from the filename. A document without a name gets the file's base
// name (extension stripped).
func Load(path string) (diagram.Document, error) {
	src, err := Detect(path)
	if err != nil {
		return diagram.Document{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return diagram.Document{}, errors.Wrap(errors.ErrCodeData, err, "open %s", path)
	}
	defer f.Close()

	doc, err := src.Parse(f)
	if err != nil {
		return diagram.Document{}, err
	}
	if doc.Name == "" {
		base := filepath.Base(path)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

// LoadReader parses a document from r, detecting the format from the
// given name (a filename or URL path).
func LoadReader(name string, r io.Reader) (diagram.Document, error) {
	src, err := Detect(name)
	if err != nil {
		return diagram.Document{}, err
	}
	return src.Parse(r)
}

// LoadBytes parses a document held in memory, detecting the format
// from the given name.
func LoadBytes(name string, data []byte) (diagram.Document, error) {
	return LoadReader(name, bytes.NewReader(data))
}

func parseError(format string, err error) error {
	return errors.Wrap(errors.ErrCodeData, err, "parse %s document", format)
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
