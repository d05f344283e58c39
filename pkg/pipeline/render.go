package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/export"
	"github.com/causelab/causeway/pkg/layout"
	"github.com/causelab/causeway/pkg/observability"
	"github.com/causelab/causeway/pkg/render"
)

// Render generates output artifacts in the requested formats.
//
// SVG is rendered once and reused for the raster and PDF conversions.
// Mermaid and DOT exports work from the diagram structure, not the
// layout, so they stay stable across layout algorithm changes.
func Render(ctx context.Context, res layout.Result, doc diagram.Document, drivers []diagram.DriverRanking, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	renderOpts := opts.RenderOptions(drivers)
	artifacts := make(map[string][]byte)

	// The diagram view is only needed for structural exports.
	var d *diagram.Diagram
	if wantsExport(opts.Formats) {
		var err error
		d, err = buildDiagram(doc)
		if err != nil {
			return nil, fmt.Errorf("build diagram: %w", err)
		}
	}

	var svg []byte
	renderSVG := func() []byte {
		if svg == nil {
			svg = render.SVG(res, renderOpts...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = renderSVG()
		case FormatPNG:
			data, err = render.ToPNG(renderSVG(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(renderSVG())
		case FormatJSON:
			data, err = json.MarshalIndent(res, "", "  ")
		case FormatMermaid:
			data = []byte(export.Mermaid(d))
		case FormatDOT:
			data = []byte(export.DOT(d))
		default:
			err = export.ErrUnknownFormat(format)
		}

		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func wantsExport(formats []string) bool {
	for _, f := range formats {
		if f == FormatMermaid || f == FormatDOT {
			return true
		}
	}
	return false
}
