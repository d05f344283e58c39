package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/errors"
	"github.com/causelab/causeway/pkg/layout"
	"github.com/causelab/causeway/pkg/pipeline"
)

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Document diagram.Document `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// layoutResponse answers layout endpoints.
type layoutResponse struct {
	DocumentHash string                   `json:"document_hash"`
	Findings     []diagram.Finding        `json:"findings,omitempty"`
	Layout       layout.Result            `json:"layout"`
	Drivers      []diagram.DriverRanking  `json:"drivers,omitempty"`
	Stats        statsBody                `json:"stats"`
	CacheInfo    pipeline.CacheInfo       `json:"cache_info"`
}

type statsBody struct {
	NodeCount  int    `json:"node_count"`
	EdgeCount  int    `json:"edge_count"`
	LayoutTime string `json:"layout_time"`
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatMermaid: "text/plain; charset=utf-8",
	pipeline.FormatDOT:     "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout lays out a document posted in the request body. Options
// come from the body, overridable per-field via the query string.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeData, err, "decode request body"))
		return
	}

	opts := req.Options
	if err := applyQueryOptions(r.URL.Query(), &opts); err != nil {
		writeError(w, err)
		return
	}

	s.respondLayout(w, r, req.Document, opts)
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	var doc diagram.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeData, err, "decode document"))
		return
	}

	findings := diagram.Validate(doc.Nodes, doc.Edges)
	if diagram.HasErrors(findings) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    apiError{Code: string(errors.ErrCodeData), Message: "document is invalid"},
			"findings": findings,
		})
		return
	}

	saved, err := s.store.Put(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"diagrams": docs,
		"count":    len(docs),
	})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "diagramID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "diagramID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiagramLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "diagramID"))
	if err != nil {
		writeError(w, err)
		return
	}

	var opts pipeline.Options
	if err := applyQueryOptions(r.URL.Query(), &opts); err != nil {
		writeError(w, err)
		return
	}

	s.respondLayout(w, r, doc, opts)
}

func (s *Server) handleDiagramRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "diagramID"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeConfig, err, "invalid format"))
		return
	}

	var opts pipeline.Options
	if err := applyQueryOptions(r.URL.Query(), &opts); err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.ExecuteDocument(r.Context(), doc, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// respondLayout runs the pipeline with JSON output and answers the
// layout response shape.
func (s *Server) respondLayout(w http.ResponseWriter, r *http.Request, doc diagram.Document, opts pipeline.Options) {
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.ExecuteDocument(r.Context(), doc, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		DocumentHash: result.DocumentHash,
		Findings:     result.Findings,
		Layout:       result.Layout,
		Drivers:      result.Drivers,
		Stats: statsBody{
			NodeCount:  result.Stats.NodeCount,
			EdgeCount:  result.Stats.EdgeCount,
			LayoutTime: result.Stats.LayoutTime.String(),
		},
		CacheInfo: result.CacheInfo,
	})
}

// applyQueryOptions overlays query string parameters onto pipeline
// options. Unknown parameters are ignored; malformed values are
// configuration errors.
func applyQueryOptions(q url.Values, opts *pipeline.Options) error {
	if v := q.Get("algorithm"); v != "" {
		opts.Algorithm = v
	}
	if v := q.Get("routing"); v != "" {
		opts.EdgeRouting = v
	}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}

	for name, dst := range map[string]*bool{
		"hide_containers": &opts.HideContainers,
		"legend":          &opts.Legend,
		"drivers":         &opts.Drivers,
		"transparent":     &opts.Transparent,
		"refresh":         &opts.Refresh,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeConfig, "invalid %s: %q", name, v)
		}
		*dst = b
	}

	for name, dst := range map[string]*float64{
		"node_width": &opts.NodeWidth,
		"tier_gap":   &opts.TierGap,
		"scale":      &opts.Scale,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeConfig, "invalid %s: %q", name, v)
		}
		*dst = f
	}

	return nil
}
