package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/httputil"
)

// Remote fetches and parses a document from an HTTP URL. The format
// comes from the URL path's extension; URLs without a recognized
// extension fall back to YAML, the primary authoring format.
func Remote(ctx context.Context, client *httputil.Client, rawURL string) (diagram.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return diagram.Document{}, errors.Wrap(errors.ErrCodeConfig, err, "invalid source url")
	}

	name := u.Path
	if _, detectErr := Detect(name); detectErr != nil {
		name = "remote.yaml"
	}

	body, err := client.GetText(ctx, rawURL)
	if err != nil {
		return diagram.Document{}, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}

	doc, err := LoadReader(name, strings.NewReader(body))
	if err != nil {
		return diagram.Document{}, err
	}
	if doc.Name == "" {
		doc.Name = remoteName(u)
	}
	return doc, nil
}

func remoteName(u *url.URL) string {
	base := u.Path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" {
		return u.Host
	}
	return base
}
