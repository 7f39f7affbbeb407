package fetch

import (
	"context"
	"sync"
	"time"

	"ebb/internal/config"
	"ebb/internal/debuglog"
	"ebb/internal/feed"
	"ebb/internal/storage"
)

const defaultConcurrency = 8

// Result is one source's outcome: a decoded feed or a recorded failure.
type Result struct {
	Source   string
	Feed     *feed.Feed
	CacheHit bool
	Err      error
}

// Orchestrator fans a batch of sources out over a bounded worker pool. A
// failing source never aborts the batch; its failure is carried in the
// results and, when a history store is attached, persisted for `ebb status`.
type Orchestrator struct {
	fetcher *Fetcher
	workers int
	history *storage.Store
}

// NewOrchestrator wires the fetcher to the configured concurrency ceiling.
// history may be nil.
func NewOrchestrator(fetcher *Fetcher, cfg *config.Config, history *storage.Store) *Orchestrator {
	workers := cfg.Feed.Concurrency
	if workers <= 0 {
		workers = defaultConcurrency
	}
	return &Orchestrator{fetcher: fetcher, workers: workers, history: history}
}

// FetchAll runs every source to completion and returns one result per
// source, in input order. It is the join barrier: nothing downstream runs
// until every source has resolved.
func (o *Orchestrator) FetchAll(ctx context.Context, sources []string) []Result {
	results := make([]Result, len(sources))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := o.workers
	if workers > len(sources) {
		workers = len(sources)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				url := sources[idx]
				decoded, cacheHit, err := o.fetcher.Fetch(ctx, url)
				results[idx] = Result{Source: url, Feed: decoded, CacheHit: cacheHit, Err: err}
			}
		}()
	}

	for idx := range sources {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	o.record(results)
	return results
}

// Feeds extracts the successfully decoded feeds from a batch.
func Feeds(results []Result) []*feed.Feed {
	var feeds []*feed.Feed
	for _, r := range results {
		if r.Err == nil && r.Feed != nil {
			feeds = append(feeds, r.Feed)
		}
	}
	return feeds
}

// Failures extracts the per-source failures from a batch.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

func (o *Orchestrator) record(results []Result) {
	if o.history == nil {
		return
	}
	now := time.Now()
	for _, r := range results {
		rec := &storage.FetchRecord{
			Source:    r.Source,
			FetchedAt: now,
			CacheHit:  r.CacheHit,
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		} else {
			rec.FeedTitle = r.Feed.Title
			rec.EntryCount = len(r.Feed.Entries)
		}
		if err := o.history.SaveRecord(rec); err != nil {
			debuglog.Warnf("recording fetch for %s: %v", r.Source, err)
		}
	}
}
