package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/platescan/platescan/internal/fetcher"
	"github.com/platescan/platescan/internal/insight"
)

// auditRequest is the POST /audit request body.
type auditRequest struct {
	URL string `json:"url"`
}

// errorResponse is the JSON body for 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// selfTestResponse is the GET /insight-selftest response body.
type selfTestResponse struct {
	Enabled bool                  `json:"enabled"`
	Models  []insight.ProbeResult `json:"models"`
}

// handleAudit runs one audit for the URL in the request body.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	logger := s.logger.With("request_id", requestID)
	start := time.Now()

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be JSON with a url field"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	logger.Info("audit requested", "url", req.URL)

	report, err := s.newPipeline().Run(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, fetcher.ErrInvalidURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid url"})
			return
		}

		// Anything past validation is a fetch failure: the page could
		// not be retrieved, so there is nothing to score.
		logger.Warn("audit failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Could not scan site: " + err.Error()})
		return
	}

	logger.Info("audit complete",
		"url", report.URL,
		"score", report.Score,
		"issues", len(report.Issues),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	writeJSON(w, http.StatusOK, report)
}

// handleSelfTest probes each configured insight model once with a
// trivial prompt. Lets operators verify credential and model
// availability without burning a full audit.
func (s *Server) handleSelfTest(w http.ResponseWriter, r *http.Request) {
	if !s.generator.Enabled() {
		writeJSON(w, http.StatusOK, selfTestResponse{Enabled: false, Models: []insight.ProbeResult{}})
		return
	}

	writeJSON(w, http.StatusOK, selfTestResponse{
		Enabled: true,
		Models:  s.generator.SelfTest(r.Context()),
	})
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
