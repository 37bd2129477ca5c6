package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline"
)

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, logger), logger)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "net", "type": "cidr", "data": {"label": "10.0.0.0/8"}},
			{"id": "srv", "type": "server", "data": {"label": "web", "address": "10.0.5.5"}}
		],
		"options": {"strategy": "addrtree"}
	}`
	rec := postJSON(t, testServer().Router(), "/api/v1/layout", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NodeCount != 2 {
		t.Errorf("node_count = %d, want 2", resp.NodeCount)
	}
	if resp.Hash == "" {
		t.Error("hash should be set")
	}

	// addrtree infers the containment edge and positions the host below
	// its network.
	if len(resp.Edges) != 1 || !resp.Edges[0].Data.Inferred {
		t.Fatalf("expected one inferred edge, got %+v", resp.Edges)
	}
	var netY, srvY float64
	for _, n := range resp.Nodes {
		switch n.ID {
		case "net":
			netY = n.Position.Y
		case "srv":
			srvY = n.Position.Y
		}
	}
	if srvY <= netY {
		t.Errorf("host y = %g should be below network y = %g", srvY, netY)
	}
}

func TestLayoutEndpointRejectsBadInput(t *testing.T) {
	router := testServer().Router()

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "malformed json",
			body:     `{"nodes": [`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed strategy token",
			body:     `{"nodes": [], "options": {"strategy": "Force!"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown strategy",
			body:     `{"nodes": [], "options": {"strategy": "circular"}}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "control character in node id",
			body:     `{"nodes": [{"id": "a\u0001b", "type": "server"}]}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/v1/layout", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if resp.Error.Code == "" {
				t.Error("error code should be set")
			}
		})
	}
}

func TestInferEndpoint(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "net", "type": "cidr", "data": {"label": "192.168.0.0/16"}},
			{"id": "pc", "type": "pc", "data": {"address": "192.168.1.10"}}
		]
	}`
	rec := postJSON(t, testServer().Router(), "/api/v1/infer", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp inferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(resp.Edges))
	}
	if resp.Edges[0].Source != "net" || resp.Edges[0].Target != "pc" {
		t.Errorf("edge = %s -> %s, want net -> pc", resp.Edges[0].Source, resp.Edges[0].Target)
	}
}

func TestStrategiesEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/strategies", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["strategies"]) != 5 {
		t.Errorf("strategies = %v, want 5 entries", resp["strategies"])
	}
}
