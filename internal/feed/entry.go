package feed

import (
	"fmt"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// Entry is one article normalized from either supported wire format. Only
// the normalized accessors are visible; which format an entry came from
// never leaks out of this package.
type Entry interface {
	Title() string
	// Link may be empty; such entries are shown but cannot be opened.
	Link() string
	Published() time.Time
}

// Feed is one decoded source: its own title plus its entries.
type Feed struct {
	Title   string
	Entries []Entry
}

type atomEntry struct {
	raw       *atom.Entry
	published time.Time
}

func (e atomEntry) Title() string { return e.raw.Title }

func (e atomEntry) Link() string {
	if len(e.raw.Links) == 0 {
		return ""
	}
	return e.raw.Links[0].Href
}

func (e atomEntry) Published() time.Time { return e.published }

type rssEntry struct {
	raw       *rss.Item
	published time.Time
}

func (e rssEntry) Title() string { return e.raw.Title }

func (e rssEntry) Link() string { return e.raw.Link }

func (e rssEntry) Published() time.Time { return e.published }

// Item is a display-ready row of the aggregated list.
type Item struct {
	Title     string
	FeedTitle string
	Link      string
	Published time.Time
}

// Display renders the row the way the list shows it: title plus the source
// feed's title in parentheses.
func (i Item) Display() string {
	if i.FeedTitle == "" {
		return i.Title
	}
	return fmt.Sprintf("%s (%s)", i.Title, i.FeedTitle)
}

// Items flattens the feed's entries into list rows.
func (f *Feed) Items() []Item {
	items := make([]Item, 0, len(f.Entries))
	for _, e := range f.Entries {
		items = append(items, Item{
			Title:     e.Title(),
			FeedTitle: f.Title,
			Link:      e.Link(),
			Published: e.Published(),
		})
	}
	return items
}
