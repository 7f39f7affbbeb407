package config

import (
	"path/filepath"
	"time"
)

// TestConfig returns a config rooted at dir, suitable for testing.
func TestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Paths = Paths{
		ConfigDir:     dir,
		CacheDir:      dir,
		FeedsFile:     filepath.Join(dir, "feeds.txt"),
		ReadStateFile: filepath.Join(dir, "read_entries.txt"),
		Database:      filepath.Join(dir, "ebb.db"),
		LogFile:       filepath.Join(dir, "ebb.log"),
	}
	cfg.Feed.HTTPTimeout = 5 * time.Second
	cfg.Feed.UserAgent = "ebb-test/1.0"
	return cfg
}
