// Package rank orders menu entries by fuzzy relevance to a query.
package rank

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Fields extracts the title and optional description (empty when absent) of an item.
type Fields[T any] func(item T) (title string, description string)

// Rank returns the items matching query, best first. An item scores the better of
// its title and description match; items matching neither are dropped. Ties keep
// input order, and a blank query keeps every item in input order.
func Rank[T any](items []T, query string, fields Fields[T]) []T {
	if strings.TrimSpace(query) == "" {
		return append([]T(nil), items...)
	}

	titles := make([]string, len(items))
	descriptions := make([]string, len(items))
	for idx, item := range items {
		titles[idx], descriptions[idx] = fields(item)
	}

	best := map[int]int{}
	record := func(matches fuzzy.Matches) {
		for _, match := range matches {
			if score, ok := best[match.Index]; !ok || match.Score > score {
				best[match.Index] = match.Score
			}
		}
	}
	record(fuzzy.Find(query, titles))
	record(fuzzy.Find(query, descriptions))

	type scored struct {
		index int
		score int
	}
	hits := make([]scored, 0, len(best))
	for idx := range items {
		if score, ok := best[idx]; ok {
			hits = append(hits, scored{index: idx, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]T, 0, len(hits))
	for _, hit := range hits {
		out = append(out, items[hit.index])
	}
	return out
}
