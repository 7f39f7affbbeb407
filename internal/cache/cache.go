// Package cache stores the raw last-fetched bytes of each feed source, one
// file per source under the cache directory. The file's mtime doubles as
// the retrieval timestamp for the freshness check.
package cache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Key derives the cache key for a feed source: the hex sha256 digest of the
// URL itself. Distinct sources never share a key, so concurrent fetches
// never touch the same file.
func Key(url string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
}

// Load returns the cached payload and its retrieval time. A missing or
// unreadable cache file reports ok=false; it never aborts a fetch.
func (s *Store) Load(key string) (data []byte, retrievedAt time.Time, ok bool) {
	path := filepath.Join(s.dir, key)
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	return data, info.ModTime(), true
}

// Store writes the payload for key, overwriting any prior value. Write
// failures surface to the caller.
func (s *Store) Store(key string, data []byte) error {
	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}
