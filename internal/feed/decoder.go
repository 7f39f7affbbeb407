package feed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"

	"ebb/internal/debuglog"
)

// Decoder turns raw fetched bytes into a Feed. Atom is tried first, then
// RSS; bytes matching neither format are a decode error.
type Decoder struct {
	atom *atom.Parser
	rss  *rss.Parser
}

func NewDecoder() *Decoder {
	return &Decoder{
		atom: &atom.Parser{},
		rss:  &rss.Parser{},
	}
}

func (d *Decoder) Decode(data []byte) (*Feed, error) {
	if af, err := d.atom.Parse(bytes.NewReader(data)); err == nil {
		return fromAtom(af), nil
	}
	if rf, err := d.rss.Parse(bytes.NewReader(data)); err == nil {
		return fromRSS(rf), nil
	}
	return nil, fmt.Errorf("decoding feed: neither Atom nor RSS recognized")
}

func fromAtom(af *atom.Feed) *Feed {
	f := &Feed{Title: af.Title}
	for _, e := range af.Entries {
		published, ok := atomDate(e)
		if !ok {
			debuglog.Debugf("feed %q: dropping entry %q: no parsable date", af.Title, e.Title)
			continue
		}
		f.Entries = append(f.Entries, atomEntry{raw: e, published: published})
	}
	return f
}

func fromRSS(rf *rss.Feed) *Feed {
	f := &Feed{Title: rf.Title}
	for _, it := range rf.Items {
		published, ok := rssDate(it)
		if !ok {
			debuglog.Debugf("feed %q: dropping entry %q: unparsable date %q", rf.Title, it.Title, it.PubDate)
			continue
		}
		f.Entries = append(f.Entries, rssEntry{raw: it, published: published})
	}
	return f
}

func atomDate(e *atom.Entry) (time.Time, bool) {
	if e.PublishedParsed != nil {
		return *e.PublishedParsed, true
	}
	if e.UpdatedParsed != nil {
		return *e.UpdatedParsed, true
	}
	return time.Time{}, false
}

// rssDate resolves an item's publication date, falling back to a tolerant
// RFC 1123/822 parse for the nonstandard strings feeds emit in the wild.
// Items whose date survives no fallback are dropped by the caller.
func rssDate(it *rss.Item) (time.Time, bool) {
	if it.PubDateParsed != nil {
		return *it.PubDateParsed, true
	}
	if it.PubDate == "" {
		return time.Time{}, false
	}

	// A bare "UTC" zone is common and not valid RFC 1123.
	normalized := strings.Replace(it.PubDate, "UTC", "+0000", 1)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
		if t, err := time.Parse(layout, it.PubDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
