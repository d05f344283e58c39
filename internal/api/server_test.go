package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/causelab/causeway/pkg/diagram"
	"github.com/causelab/causeway/pkg/layout"
	"github.com/causelab/causeway/pkg/pipeline"
	"github.com/causelab/causeway/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(Config{
		Runner: pipeline.NewRunner(nil, nil, nil),
		Store:  st,
	})
}

func testDocument() diagram.Document {
	return diagram.Document{
		Name: "chain",
		Nodes: []diagram.Node{
			{ID: "drought", Tier: diagram.TierCause},
			{ID: "crop-failure", Tier: diagram.TierIntermediate},
			{ID: "prices", Tier: diagram.TierEffect},
		},
		Edges: []diagram.Edge{
			{From: "drought", To: "crop-failure"},
			{From: "crop-failure", To: "prices"},
		},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want ok status", rec.Body.String())
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := layoutRequest{
		Document: testDocument(),
		Options:  pipeline.Options{Algorithm: layout.AlgorithmClustered},
	}
	rec := doJSON(t, s, http.MethodPost, "/v1/layout", req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.DocumentHash == "" {
		t.Error("document_hash should be set")
	}
	if len(resp.Layout.ContentNodes()) != 3 {
		t.Errorf("content nodes = %d, want 3", len(resp.Layout.ContentNodes()))
	}
	if resp.Stats.NodeCount != 3 || resp.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v, want 3 nodes and 2 edges", resp.Stats)
	}
}

func TestLayoutEndpointQueryOverride(t *testing.T) {
	s := newTestServer(t)

	req := layoutRequest{Document: testDocument()}
	rec := doJSON(t, s, http.MethodPost, "/v1/layout?algorithm=clustered&hide_containers=true", req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Layout.Containers()) != 0 {
		t.Error("hide_containers=true should suppress containers")
	}
}

func TestLayoutEndpointRejectsBadOptions(t *testing.T) {
	s := newTestServer(t)

	req := layoutRequest{Document: testDocument()}
	rec := doJSON(t, s, http.MethodPost, "/v1/layout?hide_containers=maybe", req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CONFIG_ERROR") {
		t.Errorf("body = %s, want CONFIG_ERROR code", rec.Body.String())
	}
}

func TestLayoutEndpointRejectsInvalidDocument(t *testing.T) {
	s := newTestServer(t)

	doc := testDocument()
	doc.Nodes = append(doc.Nodes, diagram.Node{ID: "drought", Tier: diagram.TierCause})
	rec := doJSON(t, s, http.MethodPost, "/v1/layout?algorithm=clustered",
		layoutRequest{Document: doc})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "DATA_ERROR") {
		t.Errorf("body = %s, want DATA_ERROR code", rec.Body.String())
	}
}

func TestDiagramCRUD(t *testing.T) {
	s := newTestServer(t)

	// Create
	rec := doJSON(t, s, http.MethodPost, "/v1/diagrams", testDocument())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created diagram.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created document should have an id")
	}

	// List
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("list body = %s, want count 1", rec.Body.String())
	}

	// Get
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Layout
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/"+created.ID+"/layout?algorithm=clustered", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Render
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/"+created.ID+"/render?format=svg&algorithm=clustered", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", got)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("render body should contain an <svg> element")
	}

	// Delete
	rec = doJSON(t, s, http.MethodDelete, "/v1/diagrams/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Gone
	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get-after-delete status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Errorf("body = %s, want NOT_FOUND code", rec.Body.String())
	}
}

func TestCreateDiagramRejectsInvalid(t *testing.T) {
	s := newTestServer(t)

	doc := diagram.Document{
		Nodes: []diagram.Node{
			{ID: "a", Tier: diagram.TierCause},
			{ID: "a", Tier: diagram.TierEffect},
		},
	}
	rec := doJSON(t, s, http.MethodPost, "/v1/diagrams", doc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "findings") {
		t.Errorf("body = %s, want findings list", rec.Body.String())
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/v1/diagrams", testDocument())
	var created diagram.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, s, http.MethodGet, "/v1/diagrams/"+created.ID+"/render?format=bmp", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDiagramRoutesWithoutStore(t *testing.T) {
	s := NewServer(Config{Runner: pipeline.NewRunner(nil, nil, nil)})

	rec := doJSON(t, s, http.MethodGet, "/v1/diagrams", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
