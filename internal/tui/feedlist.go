package tui

import (
	"ebb/internal/feed"
)

// FeedList is the selection cursor over the visible slice of the aggregated
// entry list. The aggregate itself is immutable after construction; the
// visible slice is recomputed whenever the read-state or search filter
// changes.
//
// The cursor wraps on both ends. When a filter change shrinks the list the
// cursor is clamped to the new length, not remapped to the entry it was on;
// marking the selected entry read therefore moves the highlight to whatever
// now occupies that index.
type FeedList struct {
	items   []feed.Item
	visible []feed.Item
	cursor  int // -1 when visible is empty
}

func NewFeedList(items []feed.Item) *FeedList {
	l := &FeedList{items: items}
	l.Refilter(nil)
	return l
}

// Refilter recomputes the visible slice, hiding items for which hide
// returns true, then clamps the cursor. A nil hide shows everything.
func (l *FeedList) Refilter(hide func(feed.Item) bool) {
	l.visible = l.visible[:0]
	for _, it := range l.items {
		if hide != nil && hide(it) {
			continue
		}
		l.visible = append(l.visible, it)
	}
	l.clamp()
}

func (l *FeedList) clamp() {
	if len(l.visible) == 0 {
		l.cursor = -1
		return
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
}

// Next moves the cursor forward, wrapping to the top past the end. No-op on
// an empty list.
func (l *FeedList) Next() {
	if len(l.visible) == 0 {
		return
	}
	l.cursor = (l.cursor + 1) % len(l.visible)
}

// Prev moves the cursor backward, wrapping to the bottom before the start.
// No-op on an empty list.
func (l *FeedList) Prev() {
	if len(l.visible) == 0 {
		return
	}
	l.cursor = (l.cursor + len(l.visible) - 1) % len(l.visible)
}

// Selected returns the item under the cursor, or false when the list is
// empty.
func (l *FeedList) Selected() (feed.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return feed.Item{}, false
	}
	return l.visible[l.cursor], true
}

// Len is the visible length.
func (l *FeedList) Len() int { return len(l.visible) }

// Total is the length of the underlying aggregate.
func (l *FeedList) Total() int { return len(l.items) }

func (l *FeedList) Cursor() int { return l.cursor }

// Visible exposes the filtered slice for rendering.
func (l *FeedList) Visible() []feed.Item { return l.visible }
