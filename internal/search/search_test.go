package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"contentdl/internal/utils"
)

// Full pipeline over a mocked results page: one paged request, three scraped
// anchors, probes returning 200 / unreachable / 404, two accepted links.
func TestSearchEndToEnd(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okServer.Close()
	missingServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer missingServer.Close()
	deadURL := "http://127.0.0.1:1/dead.pdf"

	var searchCalls atomic.Int32
	var gotQuery, gotStart string
	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searchCalls.Add(1)
		gotQuery = r.URL.Query().Get("q")
		gotStart = r.URL.Query().Get("start")
		for _, link := range []string{okServer.URL, deadURL, missingServer.URL} {
			fmt.Fprintf(w, `<h3 class="r"><a href="/url?q=%s&sa=U&ved=abc">r</a></h3>`, link)
		}
	}))
	defer searchServer.Close()

	var report bytes.Buffer
	engine := NewEngine(Config{
		SearchURL:    searchServer.URL,
		Client:       utils.NewRetryClient(utils.HTTPClientConfig{Timeout: 5 * time.Second}),
		ProbeTimeout: 2 * time.Second,
		Report:       &report,
	})

	links, err := engine.Search(context.Background(), "algorithms", "pdf", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if got := searchCalls.Load(); got != 1 {
		t.Errorf("Issued %d paged requests, want 1", got)
	}
	if gotQuery != "filetype:pdf algorithms" {
		t.Errorf("Query = %q, want %q", gotQuery, "filetype:pdf algorithms")
	}
	if gotStart != "0" {
		t.Errorf("Start = %q, want %q", gotStart, "0")
	}
	if len(links) != 2 {
		t.Fatalf("Accepted %d links, want 2: %v", len(links), links)
	}
	if links[0] != okServer.URL || links[1] != missingServer.URL {
		t.Errorf("Accepted links out of order: %v", links)
	}
	lines := strings.Split(strings.TrimRight(report.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("Reported %d probe lines, want 3:\n%s", len(lines), report.String())
	}
}

func TestSearchPropagatesPageFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	engine := NewEngine(Config{
		SearchURL:    server.URL,
		Client:       utils.NewRetryClient(utils.HTTPClientConfig{Timeout: 5 * time.Second}),
		ProbeTimeout: time.Second,
		Report:       &bytes.Buffer{},
	})
	if _, err := engine.Search(context.Background(), "algorithms", "pdf", 10); err == nil {
		t.Error("Expected error when search pages keep failing, got nil")
	}
}
