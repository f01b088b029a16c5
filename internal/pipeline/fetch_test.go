package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "aaerminer/") {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte("%PDF-1.4 fake document"))
	}))
	defer server.Close()

	f := NewFetcher(100, 10, 1<<20)
	data, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("data = %q", data)
	}
}

func TestFetcherRejectsOversized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	f := NewFetcher(100, 10, 1024)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for oversized document")
	}
}

func TestFetcherStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	f := NewFetcher(100, 10, 1<<20)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v, want status in message", err)
	}
}

func TestFetcherHonorsContext(t *testing.T) {
	// Rate 0 tokens per second with empty bucket, so Wait blocks until the
	// context is cancelled.
	f := NewFetcher(0.001, 1, 1<<20)
	f.limiter.Allow() // drain the burst token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "http://example.invalid/doc.pdf"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
