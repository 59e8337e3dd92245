package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/platescan/platescan/internal/fetcher"
)

// TestBatchRunnerOrderAndIsolation tests that results come back in
// input order and one failing URL does not sink the rest.
func TestBatchRunnerOrderAndIsolation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/broken") {
			// Hijack and slam the connection so the fetch fails.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("server does not support hijacking")
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Errorf("hijack failed: %v", err)
				return
			}
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte("<html><head><title>ok</title></head></html>"))
	}))
	defer srv.Close()

	f := fetcher.New()
	runner := NewBatchRunner(func() *Pipeline {
		return NewAuditPipeline(f, nil)
	}, WithConcurrency(2))

	urls := []string{
		srv.URL + "/a",
		srv.URL + "/broken",
		srv.URL + "/b",
	}

	results := runner.Run(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("len(results) = %d, expected %d", len(results), len(urls))
	}
	for i, url := range urls {
		if results[i].URL != url {
			t.Errorf("results[%d].URL = %q, expected %q (input order)", i, results[i].URL, url)
		}
	}

	if results[0].Err != nil || results[0].Report == nil {
		t.Errorf("results[0] = %+v, expected success", results[0])
	}
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, expected a fetch failure")
	}
	if results[2].Err != nil || results[2].Report == nil {
		t.Errorf("results[2] = %+v, expected success despite earlier failure", results[2])
	}
}

// TestBatchRunnerConcurrencyCap tests the in-flight audit limit.
func TestBatchRunnerConcurrencyCap(t *testing.T) {
	t.Parallel()

	const limit = 2

	var inFlight, peak atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := fetcher.New()
	runner := NewBatchRunner(func() *Pipeline {
		return NewAuditPipeline(f, nil)
	}, WithConcurrency(limit))

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = srv.URL
	}

	runner.Run(context.Background(), urls)

	if got := peak.Load(); got > limit {
		t.Errorf("peak concurrent fetches = %d, expected at most %d", got, limit)
	}
}

// TestBatchRunnerCancelledContext tests that cancellation is recorded
// per URL rather than panicking or hanging.
func TestBatchRunnerCancelledContext(t *testing.T) {
	t.Parallel()

	runner := NewBatchRunner(func() *Pipeline {
		return NewAuditPipeline(fetcher.New(), nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := runner.Run(ctx, []string{"example.com", "example.org"})

	for i, result := range results {
		if result.Err == nil {
			t.Errorf("results[%d].Err = nil, expected a cancellation error", i)
		}
	}
}
