package domain

import (
	"sort"
	"strings"
	"time"
)

// Sort selects the ordering of a query result.
type Sort string

const (
	SortNewest Sort = "newest" // dateAdded descending
	SortOldest Sort = "oldest" // dateAdded ascending
	SortAZ     Sort = "az"     // tweetText ascending
	SortZA     Sort = "za"     // tweetText descending
)

// FilterAll disables type filtering.
const FilterAll = "all"

// QueryBookmarks computes a filtered, searched and sorted view over the
// collection. It never mutates its input and returns a fresh slice on
// every call. Filter and search are conjunctive; the sort is stable, so
// ties keep their original relative order.
func QueryBookmarks(bookmarks []*Bookmark, filter string, search string, sortMode Sort) []*Bookmark {
	result := make([]*Bookmark, 0, len(bookmarks))

	// Trimming applies only to the blankness test; a non-blank query
	// matches with its padding intact.
	query := strings.ToLower(search)
	searching := strings.TrimSpace(query) != ""
	for _, b := range bookmarks {
		if filter != "" && filter != FilterAll && string(b.Type) != filter {
			continue
		}
		if searching && !matchesSearch(b, query) {
			continue
		}
		result = append(result, b)
	}

	switch sortMode {
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool {
			return parseWhen(result[i].DateAdded).Before(parseWhen(result[j].DateAdded))
		})
	case SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return parseWhen(result[j].DateAdded).Before(parseWhen(result[i].DateAdded))
		})
	case SortAZ:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].TweetText < result[j].TweetText
		})
	case SortZA:
		sort.SliceStable(result, func(i, j int) bool {
			return result[j].TweetText < result[i].TweetText
		})
	}

	return result
}

// matchesSearch reports whether the lowercased query is a substring of
// the tweet text, display name, username, or any tag. Matching is
// case-insensitive even though tag dedup elsewhere is case-sensitive;
// that asymmetry is intentional.
func matchesSearch(b *Bookmark, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(b.TweetText), lowerQuery) ||
		strings.Contains(strings.ToLower(b.DisplayName), lowerQuery) ||
		strings.Contains(strings.ToLower(b.Username), lowerQuery) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// parseWhen parses an ISO-8601 timestamp, tolerating fractional
// seconds. Unparseable values sort as the zero time.
func parseWhen(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
