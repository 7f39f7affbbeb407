package main

import (
	"ebb/internal/cache"
	"ebb/internal/config"
	"ebb/internal/debuglog"
	"ebb/internal/feed"
	"ebb/internal/fetch"
	"ebb/internal/readstate"
	"ebb/internal/storage"
)

// env holds the wired fetch pipeline shared by the TUI and the headless
// commands.
type env struct {
	sources      []string
	orchestrator *fetch.Orchestrator
	tracker      *readstate.Tracker
	history      *storage.Store
}

func newEnv(cfg *config.Config) (*env, error) {
	// A missing or unreadable feeds file aborts before any fetch.
	sources, err := feed.LoadSources(cfg.Paths.FeedsFile)
	if err != nil {
		return nil, err
	}

	cacheStore, err := cache.NewStore(cfg.Paths.CacheDir)
	if err != nil {
		return nil, err
	}

	// Fetch history is best-effort; a locked or corrupt database must not
	// keep the reader from starting.
	history, err := storage.NewStore(cfg.Paths.Database)
	if err != nil {
		debuglog.Warnf("opening fetch history: %v", err)
		history = nil
	}

	tracker, err := readstate.Load(cfg.Paths.ReadStateFile)
	if err != nil {
		// Degrade to an empty set; marks still append to the same file.
		debuglog.Warnf("loading read state: %v", err)
		tracker = readstate.New(cfg.Paths.ReadStateFile)
	}

	fetcher := fetch.NewFetcher(cfg, cacheStore)
	return &env{
		sources:      sources,
		orchestrator: fetch.NewOrchestrator(fetcher, cfg, history),
		tracker:      tracker,
		history:      history,
	}, nil
}

func (e *env) Close() {
	if e.history != nil {
		_ = e.history.Close()
	}
}
