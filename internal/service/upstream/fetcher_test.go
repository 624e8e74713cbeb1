package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskRadar/internal/domain/repository"
	"RiskRadar/pkg/cache"
)

func TestGetBytesSendsBrowserHeaders(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	body, err := f.GetBytes(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}
	if gotUA != userAgent {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
}

func TestGetBytesRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	if _, err := f.GetBytes(context.Background(), srv.URL); !repository.IsRateLimited(err) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}

func TestGetBytesNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	if _, err := f.GetBytes(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 503")
	}
}

func TestGetBytesUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("cached"))
	}))
	defer srv.Close()

	store := cache.NewMemoryCache()
	defer store.Close()

	f := NewFetcher(5*time.Second, WithCache(store, time.Minute))
	for i := 0; i < 3; i++ {
		body, err := f.GetBytes(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(body) != "cached" {
			t.Fatalf("unexpected body %q", body)
		}
	}
	if hits != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", hits)
	}
}

func TestGetDocumentParsesHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Hello</h1></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	doc, err := f.GetDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Hello" {
		t.Fatalf("unexpected document text %q", got)
	}
}
