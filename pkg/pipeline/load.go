package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/causelab/causeway/pkg/cache"
	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/source"
)

// load resolves a document from a local path or remote URL. Remote
// documents are cached by URL hash; local files are read directly.
func (r *Runner) load(ctx context.Context, opts Options) (diagram.Document, bool, error) {
	if opts.URL == "" {
		doc, err := source.Load(opts.Path)
		return doc, false, err
	}
	return r.loadRemote(ctx, opts)
}

func (r *Runner) loadRemote(ctx context.Context, opts Options) (diagram.Document, bool, error) {
	cacheKey := r.Keyer.DocumentKey(cache.Hash([]byte(opts.URL)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc diagram.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				return doc, true, nil
			}
		}
	}

	doc, err := source.Remote(ctx, r.HTTP, opts.URL)
	if err != nil {
		return diagram.Document{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(doc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DocumentTTL)
	}

	return doc, false, nil
}

// loadTarget describes the load input for log and hook labels.
func loadTarget(opts Options) (format, name string) {
	if opts.URL != "" {
		return "remote", opts.URL
	}
	ext := filepath.Ext(opts.Path)
	if len(ext) > 1 {
		format = ext[1:]
	}
	return format, filepath.Base(opts.Path)
}
