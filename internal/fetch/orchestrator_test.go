package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ebb/internal/cache"
	"ebb/internal/config"
	"ebb/internal/storage"
)

func feedPayload(title string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>%s</title>
		<item>
			<title>Entry</title>
			<link>http://example.com/%s</link>
			<pubDate>Wed, 01 Jan 2025 12:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`, title, strings.ToLower(title))
}

func newOrchestratorFixture(t *testing.T, handler http.Handler, workers int, history *storage.Store) (*Orchestrator, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	store, err := cache.NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.TestConfig(dir)
	cfg.Feed.Concurrency = workers
	return NewOrchestrator(NewFetcher(cfg, store), cfg, history), server
}

func TestOrchestrator_ResultsInInputOrder(t *testing.T) {
	orch, server := newOrchestratorFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/")
		w.Write([]byte(feedPayload(title)))
	}), 4, nil)

	sources := []string{
		server.URL + "/Alpha",
		server.URL + "/Beta",
		server.URL + "/Gamma",
	}
	results := orch.FetchAll(context.Background(), sources)

	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if results[i].Source != sources[i] {
			t.Errorf("result %d: expected source %s, got %s", i, sources[i], results[i].Source)
		}
		if results[i].Err != nil {
			t.Errorf("result %d: unexpected error: %v", i, results[i].Err)
			continue
		}
		if results[i].Feed.Title != want {
			t.Errorf("result %d: expected title %s, got %s", i, want, results[i].Feed.Title)
		}
	}
}

func TestOrchestrator_BoundedConcurrency(t *testing.T) {
	const workers = 2

	var mu sync.Mutex
	inflight, peak := 0, 0

	orch, server := newOrchestratorFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inflight++
		if inflight > peak {
			peak = inflight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inflight--
		mu.Unlock()

		w.Write([]byte(feedPayload("Feed")))
	}), workers, nil)

	sources := make([]string, 8)
	for i := range sources {
		sources[i] = fmt.Sprintf("%s/feed%d", server.URL, i)
	}
	orch.FetchAll(context.Background(), sources)

	mu.Lock()
	defer mu.Unlock()
	if peak > workers {
		t.Errorf("expected at most %d concurrent requests, saw %d", workers, peak)
	}
}

func TestOrchestrator_FailingSourceDoesNotAbortBatch(t *testing.T) {
	var calls int64
	orch, server := newOrchestratorFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedPayload("Good")))
	}), 4, nil)

	sources := []string{
		server.URL + "/good1",
		server.URL + "/broken",
		server.URL + "/good2",
	}
	results := orch.FetchAll(context.Background(), sources)

	failures := Failures(results)
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Source != sources[1] {
		t.Errorf("expected failing source %s, got %s", sources[1], failures[0].Source)
	}

	feeds := Feeds(results)
	if len(feeds) != 2 {
		t.Errorf("expected 2 decoded feeds, got %d", len(feeds))
	}
}

func TestOrchestrator_RecordsHistory(t *testing.T) {
	history, err := storage.NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	orch, server := newOrchestratorFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(feedPayload("Recorded")))
	}), 2, history)

	good := server.URL + "/ok"
	bad := server.URL + "/broken"
	orch.FetchAll(context.Background(), []string{good, bad})

	rec, err := history.GetRecord(good)
	if err != nil {
		t.Fatalf("expected record for %s: %v", good, err)
	}
	if rec.FeedTitle != "Recorded" {
		t.Errorf("expected feed title 'Recorded', got %q", rec.FeedTitle)
	}
	if rec.EntryCount != 1 {
		t.Errorf("expected 1 entry, got %d", rec.EntryCount)
	}
	if rec.Error != "" {
		t.Errorf("expected no error, got %q", rec.Error)
	}

	rec, err = history.GetRecord(bad)
	if err != nil {
		t.Fatalf("expected record for %s: %v", bad, err)
	}
	if rec.Error == "" {
		t.Error("expected recorded error for failing source")
	}
}
