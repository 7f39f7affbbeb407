package storage

import (
	"time"
)

// FetchRecord is the last known outcome for one feed source. One record per
// source, overwritten on every run; read back by `ebb status`.
type FetchRecord struct {
	Source     string    `json:"source"`
	FeedTitle  string    `json:"feed_title"`
	FetchedAt  time.Time `json:"fetched_at"`
	CacheHit   bool      `json:"cache_hit"`
	EntryCount int       `json:"entry_count"`
	Error      string    `json:"error,omitempty"`
}
