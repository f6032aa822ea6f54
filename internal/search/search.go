package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/popcorn/internal/domain"
)

// WatchedMatch is a watched-list entry that matched a filter
type WatchedMatch struct {
	Entry          domain.WatchedEntry
	Index          int   // Position in the unfiltered list
	MatchedIndexes []int // Title byte offsets for highlighting
}

// watchedSource adapts entries to sahilm/fuzzy.Source
type watchedSource []domain.WatchedEntry

func (s watchedSource) String(i int) string { return s[i].Title }
func (s watchedSource) Len() int            { return len(s) }

// FilterWatched fuzzy-matches query against watched titles, best first.
// An empty query matches everything in list order.
func FilterWatched(query string, entries []domain.WatchedEntry) []WatchedMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]WatchedMatch, len(entries))
		for i, e := range entries {
			out[i] = WatchedMatch{Entry: e, Index: i}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, watchedSource(entries))
	out := make([]WatchedMatch, len(matches))
	for i, m := range matches {
		out[i] = WatchedMatch{
			Entry:          entries[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}

// FilterResults narrows search results to titles containing the query's
// characters in order, closest first. Ties keep API order.
// An empty query returns results unchanged.
func FilterResults(query string, results []domain.SearchResult) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}

	ranks := lfuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.SearchResult, len(ranks))
	for i, r := range ranks {
		out[i] = results[r.OriginalIndex]
	}
	return out
}
