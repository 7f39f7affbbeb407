// Package readstate persists the links the user has marked read, one per
// line, append-only. A crash mid-write loses at most the pending entry.
package readstate

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type Tracker struct {
	path string
	read map[string]struct{}
}

// New returns an empty tracker that persists to path.
func New(path string) *Tracker {
	return &Tracker{path: path, read: make(map[string]struct{})}
}

// Load reads the persisted read-links file. A missing file is an empty set.
func Load(path string) (*Tracker, error) {
	t := New(path)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("opening read-state file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		link := strings.TrimSpace(scanner.Text())
		if link != "" {
			t.read[link] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading read-state file: %w", err)
	}
	return t, nil
}

// MarkRead adds the link to the set and appends it to the persisted store.
// An append failure surfaces so the caller can report the lost action.
func (t *Tracker) MarkRead(link string) error {
	if link == "" {
		return nil
	}
	if _, ok := t.read[link]; ok {
		return nil
	}

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening read-state file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, link); err != nil {
		return fmt.Errorf("appending read entry: %w", err)
	}

	t.read[link] = struct{}{}
	return nil
}

func (t *Tracker) IsRead(link string) bool {
	_, ok := t.read[link]
	return ok
}

// Len reports how many links are marked read.
func (t *Tracker) Len() int { return len(t.read) }
