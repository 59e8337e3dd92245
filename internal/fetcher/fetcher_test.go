package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetchSuccess tests a plain successful retrieval.
func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	const page = "<html><head><title>Test Cafe</title></head><body>hello</body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, expected a browser-like value", ua)
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := New(WithHTTPClient(srv.Client()))

	result, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HTML != page {
		t.Errorf("HTML = %q, expected %q", result.HTML, page)
	}
	if result.LoadTimeMs < 0 {
		t.Errorf("LoadTimeMs = %d, expected non-negative", result.LoadTimeMs)
	}
}

// TestFetchFollowsRedirects tests that short redirect chains are followed.
func TestFetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	const page = "<html><body>final</body></html>"

	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/middle", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := New(WithHTTPClient(srv.Client()))

	result, err := f.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HTML != page {
		t.Errorf("HTML = %q, expected %q", result.HTML, page)
	}
}

// TestFetchRedirectCap tests that long redirect chains abort.
func TestFetchRedirectCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Redirect forever.
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer srv.Close()

	f := New()

	_, err := f.Fetch(context.Background(), srv.URL+"/loop")
	if err == nil {
		t.Fatal("expected error for unbounded redirects, got nil")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("error = %T, expected *NetworkError", err)
	}
}

// TestFetchTimeout tests that a stalled origin yields a TimeoutError.
func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := New(WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond))

	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Errorf("error = %T (%v), expected *TimeoutError", err, err)
	}
}

// TestFetchUnreachableHost tests that a dead origin yields a NetworkError.
func TestFetchUnreachableHost(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	addr := srv.URL
	srv.Close() // nothing is listening anymore

	f := New()

	_, err := f.Fetch(context.Background(), addr)
	if err == nil {
		t.Fatal("expected error for closed server, got nil")
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("error = %T (%v), expected *NetworkError", err, err)
	}
}

// TestFetchBodySizeCap tests the response body limit.
func TestFetchBodySizeCap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer srv.Close()

	f := New(WithHTTPClient(srv.Client()), WithMaxBodySize(100))

	result, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.HTML) != 100 {
		t.Errorf("len(HTML) = %d, expected 100", len(result.HTML))
	}
}

// TestErrorUnwrap tests that both error types expose their cause.
func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	netErr := &NetworkError{URL: "https://example.com", Err: cause}
	if !errors.Is(netErr, cause) {
		t.Error("NetworkError does not unwrap to its cause")
	}
	if !strings.Contains(netErr.Error(), "example.com") {
		t.Errorf("NetworkError message missing URL: %q", netErr.Error())
	}

	timeoutErr := &TimeoutError{URL: "https://example.com", Err: cause}
	if !errors.Is(timeoutErr, cause) {
		t.Error("TimeoutError does not unwrap to its cause")
	}
	if !strings.Contains(timeoutErr.Error(), "timed out") {
		t.Errorf("TimeoutError message missing phrase: %q", timeoutErr.Error())
	}
}
