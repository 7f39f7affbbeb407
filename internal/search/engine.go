// Package search indexes the aggregated entries in an in-memory bleve
// index and resolves queries to the set of matching links. The aggregate is
// rebuilt every run, so the index never persists.
package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"ebb/internal/feed"
)

type Engine struct {
	idx bleve.Index
}

// NewEngine builds the index over the aggregated list. Entries without a
// link are not indexed; search results are keyed by link.
func NewEngine(items []feed.Item) (*Engine, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for _, it := range items {
		if it.Link == "" {
			continue
		}
		_ = batch.Index(it.Link, map[string]any{
			"title":      it.Title,
			"feed_title": it.FeedTitle,
			"link":       it.Link,
		})
	}
	if err := idx.Batch(batch); err != nil {
		return nil, err
	}
	return &Engine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = false

	feedTitle := bleve.NewTextFieldMapping()
	feedTitle.Analyzer = standard.Name
	feedTitle.Store = false

	link := bleve.NewTextFieldMapping()
	link.Analyzer = standard.Name
	link.Store = false

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("feed_title", feedTitle)
	dm.AddFieldMappingsAt("link", link)

	im.DefaultMapping = dm
	return im
}

// Search returns the links of entries matching the query. Queries shorter
// than two characters match nothing.
func (e *Engine) Search(query string, limit int) (map[string]struct{}, error) {
	matches := make(map[string]struct{})
	if len(strings.TrimSpace(query)) < 2 {
		return matches, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)

		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qf := bleve.NewMatchQuery(tok)
		qf.SetField("feed_title")
		qf.SetBoost(2.0)
		qs = append(qs, qf)

		qu := bleve.NewPrefixQuery(tok)
		qu.SetField("link")
		qu.SetBoost(0.5)
		qs = append(qs, qu)
	}
	if len(qs) == 0 {
		return matches, nil
	}

	q := bleve.NewDisjunctionQuery(qs...)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := e.idx.Search(req)
	if err != nil {
		return nil, err
	}
	for _, h := range res.Hits {
		matches[h.ID] = struct{}{}
	}
	return matches, nil
}

// DocCount reports how many entries the index holds.
func (e *Engine) DocCount() (uint64, error) {
	return e.idx.DocCount()
}

func (e *Engine) Close() error {
	return e.idx.Close()
}
