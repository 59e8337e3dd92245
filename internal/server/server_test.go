package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/platescan/platescan/internal/config"
	"github.com/platescan/platescan/internal/fetcher"
	"github.com/platescan/platescan/internal/model"
	"github.com/platescan/platescan/internal/pipeline"
)

// newTestServer builds a Server whose pipeline fetches from the given
// origin handler instead of the real internet.
func newTestServer(t *testing.T, origin http.Handler) (*Server, *httptest.Server) {
	t.Helper()

	originSrv := httptest.NewServer(origin)
	t.Cleanup(originSrv.Close)

	cfg := config.New()
	cfg.APIKey = "" // insights off unless a test wires its own generator

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := fetcher.New(fetcher.WithHTTPClient(originSrv.Client()))
	s := New(cfg, logger, WithPipelineFactory(func() *pipeline.Pipeline {
		return pipeline.NewAuditPipeline(f, nil, pipeline.WithLogger(logger))
	}))

	return s, originSrv
}

// postAudit issues a POST /audit with the given body.
func postAudit(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/audit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestHandleAuditSuccess tests the happy path: 200 with a scored report.
func TestHandleAuditSuccess(t *testing.T) {
	t.Parallel()

	s, origin := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Cafe Testo - Espresso And Assertions</title></head><body><h1>Hi</h1></body></html>`))
	}))

	rec := postAudit(t, s.Handler(), `{"url": "`+origin.URL+`"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, expected application/json", ct)
	}

	var report model.AuditReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("response is not a report: %v", err)
	}
	if report.Title != "Cafe Testo - Espresso And Assertions" {
		t.Errorf("Title = %q", report.Title)
	}
	if report.Score < 0 || report.Score > 100 {
		t.Errorf("Score = %d, expected 0-100", report.Score)
	}
	if report.AIInsights != nil {
		t.Errorf("AIInsights = %+v, expected null without a credential", report.AIInsights)
	}

	// The raw body must carry the null explicitly, not omit the field.
	if !strings.Contains(rec.Body.String(), `"aiInsights":null`) {
		t.Errorf("body missing explicit aiInsights null: %s", rec.Body.String())
	}
}

// TestHandleAuditBadRequests tests the 400 paths.
func TestHandleAuditBadRequests(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	handler := s.Handler()

	testCases := []struct {
		name string
		body string
	}{
		{"not json", "this is not json"},
		{"empty body", ""},
		{"missing url", `{}`},
		{"empty url", `{"url": ""}`},
		{"invalid url", `{"url": "%%%"}`},
		{"dotless host", `{"url": "pizza"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := postAudit(t, handler, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400 (body: %s)", rec.Code, rec.Body.String())
			}

			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected a non-empty error message")
			}
		})
	}
}

// TestHandleAuditFetchFailure tests the 500 contract for unreachable
// sites.
func TestHandleAuditFetchFailure(t *testing.T) {
	t.Parallel()

	s, origin := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	deadURL := origin.URL
	origin.Close() // kill the origin so the fetch fails

	rec := postAudit(t, s.Handler(), `{"url": "`+deadURL+`"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, expected 500 (body: %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Could not scan site") {
		t.Errorf("body missing failure phrase: %s", rec.Body.String())
	}
}

// TestHandleAuditMethodNotAllowed tests routing strictness.
func TestHandleAuditMethodNotAllowed(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/audit", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

// TestHandleSelfTestDisabled tests the probe endpoint without a
// credential.
func TestHandleSelfTestDisabled(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/insight-selftest", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp struct {
		Enabled bool              `json:"enabled"`
		Models  []json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Enabled {
		t.Error("Enabled = true, expected false without a credential")
	}
	if resp.Models == nil {
		t.Error("Models must be an empty array, not null")
	}
}

// TestHandleHealthz tests the liveness endpoint.
func TestHandleHealthz(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
