package feed

import (
	"strings"
	"testing"
	"time"
)

const atomSample = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Example Atom Feed</title>
	<entry>
		<title>First Entry</title>
		<link href="http://example.com/first"/>
		<published>2025-01-02T12:00:00Z</published>
		<updated>2025-01-03T08:00:00Z</updated>
	</entry>
	<entry>
		<title>Updated Only</title>
		<link href="http://example.com/second"/>
		<updated>2025-01-01T09:30:00Z</updated>
	</entry>
	<entry>
		<title>No Date</title>
		<link href="http://example.com/third"/>
	</entry>
</feed>`

const rssSample = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Example RSS Feed</title>
		<link>http://example.com</link>
		<item>
			<title>First Item</title>
			<link>http://example.com/a</link>
			<pubDate>Wed, 01 Jan 2025 12:00:00 GMT</pubDate>
		</item>
		<item>
			<title>Bare UTC Zone</title>
			<link>http://example.com/b</link>
			<pubDate>Thu, 02 Jan 2025 12:00:00 UTC</pubDate>
		</item>
		<item>
			<title>Garbage Date</title>
			<link>http://example.com/c</link>
			<pubDate>sometime last week</pubDate>
		</item>
	</channel>
</rss>`

func TestDecoder_Atom(t *testing.T) {
	f, err := NewDecoder().Decode([]byte(atomSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Title != "Example Atom Feed" {
		t.Errorf("expected feed title 'Example Atom Feed', got %q", f.Title)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("expected 2 entries (dateless entry dropped), got %d", len(f.Entries))
	}

	first := f.Entries[0]
	if first.Title() != "First Entry" {
		t.Errorf("expected title 'First Entry', got %q", first.Title())
	}
	if first.Link() != "http://example.com/first" {
		t.Errorf("expected link 'http://example.com/first', got %q", first.Link())
	}
	want := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	if !first.Published().Equal(want) {
		t.Errorf("expected published %v, got %v", want, first.Published())
	}

	// published is absent; updated stands in.
	second := f.Entries[1]
	want = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
	if !second.Published().Equal(want) {
		t.Errorf("expected published %v, got %v", want, second.Published())
	}
}

func TestDecoder_RSS(t *testing.T) {
	f, err := NewDecoder().Decode([]byte(rssSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Title != "Example RSS Feed" {
		t.Errorf("expected feed title 'Example RSS Feed', got %q", f.Title)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("expected 2 entries (garbage date dropped), got %d", len(f.Entries))
	}

	if f.Entries[0].Link() != "http://example.com/a" {
		t.Errorf("expected link 'http://example.com/a', got %q", f.Entries[0].Link())
	}

	// "UTC" is not a valid RFC 1123 zone but common in the wild.
	want := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	if !f.Entries[1].Published().Equal(want) {
		t.Errorf("expected published %v, got %v", want, f.Entries[1].Published())
	}
}

func TestDecoder_NeitherFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "html page", data: "<html><body>not a feed</body></html>"},
		{name: "plain text", data: "hello world"},
		{name: "empty", data: ""},
	}

	d := NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "Atom") || !strings.Contains(err.Error(), "RSS") {
				t.Errorf("error should name both formats, got %q", err)
			}
		})
	}
}

func TestItem_Display(t *testing.T) {
	it := Item{Title: "Go 1.25 released", FeedTitle: "Go Blog"}
	if got := it.Display(); got != "Go 1.25 released (Go Blog)" {
		t.Errorf("expected 'Go 1.25 released (Go Blog)', got %q", got)
	}

	it = Item{Title: "Orphan"}
	if got := it.Display(); got != "Orphan" {
		t.Errorf("expected 'Orphan', got %q", got)
	}
}

func TestFeed_Items(t *testing.T) {
	f, err := NewDecoder().Decode([]byte(rssSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := f.Items()
	if len(items) != len(f.Entries) {
		t.Fatalf("expected %d items, got %d", len(f.Entries), len(items))
	}
	for _, it := range items {
		if it.FeedTitle != "Example RSS Feed" {
			t.Errorf("expected feed title on every item, got %q", it.FeedTitle)
		}
	}
}
