package stats

import "sort"

// Ranking lengths.
const (
	TrendingLimit = 8
	TopRatedLimit = 6
)

// Trending orders entries by view count, highest first, and returns up to n
// IDs. Ties keep their input order.
func Trending(entries []Entry, n int) []string {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewCount > ranked[j].ViewCount
	})
	return firstIDs(ranked, n)
}

// TopRated keeps entries with at least one rating, orders them by average
// rating, highest first, and returns up to n IDs. Ties keep their input order.
func TopRated(entries []Entry, n int) []string {
	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.TotalRatings >= 1 {
			ranked = append(ranked, e)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})
	return firstIDs(ranked, n)
}

func firstIDs(entries []Entry, n int) []string {
	n = max(min(n, len(entries)), 0)
	ids := make([]string, n)
	for i := range n {
		ids[i] = entries[i].ID
	}
	return ids
}
