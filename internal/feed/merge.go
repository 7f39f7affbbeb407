package feed

import "sort"

// Merge flattens all feeds into one list sorted newest first. Relative
// order of equal timestamps is not guaranteed.
func Merge(feeds []*Feed) []Item {
	var items []Item
	for _, f := range feeds {
		items = append(items, f.Items()...)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
	return items
}
