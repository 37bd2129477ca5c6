package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/errors"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/layout"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline"
	"github.com/CRONUS-Security/DeepNetVisibility/pkg/topo"
)

// maxBodyBytes caps request bodies. Topology documents are small; anything
// beyond this is either abuse or a mistake.
const maxBodyBytes = 16 << 20

// layoutRequest is the body of POST /api/v1/layout and /api/v1/infer.
type layoutRequest struct {
	Nodes   []topo.Node      `json:"nodes"`
	Edges   []topo.Edge      `json:"edges"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the success body of POST /api/v1/layout.
type layoutResponse struct {
	Nodes     []topo.Node `json:"nodes"`
	Edges     []topo.Edge `json:"edges"`
	Hash      string      `json:"hash"`
	CacheHit  bool        `json:"cache_hit"`
	NodeCount int         `json:"node_count"`
	EdgeCount int         `json:"edge_count"`
}

// inferResponse is the success body of POST /api/v1/infer.
type inferResponse struct {
	Edges []topo.Edge `json:"edges"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTopology(w, r)
	if !ok {
		return
	}

	doc := topo.NewDocument(req.Nodes, req.Edges)
	doc.EnsureIDs()

	result, err := s.runner.Execute(r.Context(), doc, req.Options)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout failed"))
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Nodes:     result.Document.Nodes,
		Edges:     result.Document.Edges,
		Hash:      result.DocumentHash,
		CacheHit:  result.CacheInfo.LayoutHit,
		NodeCount: result.Stats.NodeCount,
		EdgeCount: result.Stats.EdgeCount,
	})
}

func (s *Server) handleInfer(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTopology(w, r)
	if !ok {
		return
	}

	doc := topo.NewDocument(req.Nodes, req.Edges)
	doc.EnsureIDs()

	writeJSON(w, http.StatusOK, inferResponse{
		Edges: s.runner.Infer(doc.Nodes, doc.Edges),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(layout.ValidStrategies))
	for name := range layout.ValidStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string][]string{"strategies": names})
}

// decodeTopology parses and validates a topology request body. On failure it
// writes the error response and returns ok=false.
func (s *Server) decodeTopology(w http.ResponseWriter, r *http.Request) (layoutRequest, bool) {
	var req layoutRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "malformed request body"))
		return req, false
	}

	for _, n := range req.Nodes {
		if n.ID == "" {
			continue // assigned by EnsureIDs
		}
		if err := errors.ValidateNodeID(n.ID); err != nil {
			writeError(w, err)
			return req, false
		}
	}
	if req.Options.Strategy != "" {
		if err := errors.ValidateStrategyToken(req.Options.Strategy); err != nil {
			writeError(w, err)
			return req, false
		}
		if err := pipeline.ValidateStrategy(req.Options.Strategy); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidStrategy, err, "unknown strategy"))
			return req, false
		}
	}

	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidNodeID:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
