package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ebb/internal/cache"
	"ebb/internal/config"
	"ebb/internal/debuglog"
	"ebb/internal/feed"
)

// Fetcher resolves one feed source to its decoded entries, reusing the
// byte cache when the remote's Last-Modified header says the cached copy is
// still current.
type Fetcher struct {
	client    *http.Client
	cache     *cache.Store
	decoder   *feed.Decoder
	userAgent string
}

func NewFetcher(cfg *config.Config, store *cache.Store) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Feed.HTTPTimeout},
		cache:     store,
		decoder:   feed.NewDecoder(),
		userAgent: cfg.Feed.UserAgent,
	}
}

// Fetch returns the decoded feed and whether the cached payload was reused.
//
// The cached copy is reused iff it exists, the remote supplied a parsable
// Last-Modified, and the local retrieval time is at or after it. Anything
// missing forces a fresh fetch. Freshly fetched bytes always land in the
// cache, even when decoding them fails afterwards.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*feed.Feed, bool, error) {
	remoteModified, err := f.head(ctx, url)
	if err != nil {
		return nil, false, err
	}

	key := cache.Key(url)
	cached, retrievedAt, haveCache := f.cache.Load(key)

	if haveCache && !remoteModified.IsZero() && !retrievedAt.Before(remoteModified) {
		debuglog.Debugf("fetch %s: cache current (retrieved %s, remote %s)", url, retrievedAt, remoteModified)
		decoded, err := f.decoder.Decode(cached)
		if err != nil {
			return nil, true, fmt.Errorf("%s: %w", url, err)
		}
		return decoded, true, nil
	}

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, false, err
	}

	decoded, decodeErr := f.decoder.Decode(body)

	// A malformed payload still updates the cache; the download succeeded.
	if storeErr := f.cache.Store(key, body); storeErr != nil {
		debuglog.Warnf("fetch %s: %v", url, storeErr)
	}

	if decodeErr != nil {
		return nil, false, fmt.Errorf("%s: %w", url, decodeErr)
	}
	return decoded, false, nil
}

// head asks the source for its Last-Modified. A missing or unparsable
// header yields the zero time, which forces a fresh fetch; a network error
// fails the source.
func (f *Fetcher) head(ctx context.Context, url string) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("probing feed: %w", err)
	}
	defer resp.Body.Close()

	lastModified := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		return time.Time{}, nil
	}
	t, err := http.ParseTime(lastModified)
	if err != nil {
		debuglog.Debugf("fetch %s: unparsable Last-Modified %q", url, lastModified)
		return time.Time{}, nil
	}
	return t, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching feed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
