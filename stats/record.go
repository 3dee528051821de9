package stats

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Record is the aggregate usage of one tool.
type Record struct {
	ViewCount     int64   `json:"view_count"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// Row is one raw row of the statistics table.
type Row struct {
	ToolID        string  `json:"tool_id"`
	ViewCount     int64   `json:"view_count"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// Source reads the whole statistics table.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: implementations must honor cancellation/deadlines.
//   - Errors: transport failures are returned, never panicked.
type Source interface {
	ScanAll(ctx context.Context) ([]Row, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Row, error)

// ScanAll calls f.
func (f SourceFunc) ScanAll(ctx context.Context) ([]Row, error) { return f(ctx) }

// Entry pairs a tool ID with its record.
type Entry struct {
	ID string
	Record
}

// Snapshot is an immutable, insertion-ordered mapping from tool ID to Record.
type Snapshot struct {
	entries    []Entry
	index      map[string]int
	capturedAt time.Time

	trendingOnce sync.Once
	trending     []string
	topOnce      sync.Once
	topRated     []string
}

// NewSnapshot builds a snapshot from rows in source order.
//
// Blank IDs are skipped. Negative counters are clamped to zero and ratings to
// [0,5]. A repeated ID keeps its first position and takes the last values.
func NewSnapshot(rows []Row, capturedAt time.Time) *Snapshot {
	s := &Snapshot{
		entries:    make([]Entry, 0, len(rows)),
		index:      make(map[string]int, len(rows)),
		capturedAt: capturedAt,
	}
	for _, r := range rows {
		id := strings.TrimSpace(r.ToolID)
		if id == "" {
			continue
		}
		rec := Record{
			ViewCount:     max(r.ViewCount, 0),
			AverageRating: min(max(r.AverageRating, 0), 5),
			TotalRatings:  max(r.TotalRatings, 0),
		}
		if i, ok := s.index[id]; ok {
			s.entries[i].Record = rec
			continue
		}
		s.index[id] = len(s.entries)
		s.entries = append(s.entries, Entry{ID: id, Record: rec})
	}
	return s
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// CapturedAt returns when the snapshot was taken.
func (s *Snapshot) CapturedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.capturedAt
}

// Entries returns a copy of the entries in insertion order.
func (s *Snapshot) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the record for id and whether it is present.
func (s *Snapshot) Lookup(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Record{}, false
	}
	return s.entries[i].Record, true
}

// Record returns the record for id, or the zero Record when unknown.
func (s *Snapshot) Record(id string) Record {
	rec, _ := s.Lookup(id)
	return rec
}

// Trending returns the top TrendingLimit IDs by view count.
// The result is computed once per snapshot.
func (s *Snapshot) Trending() []string {
	if s == nil {
		return []string{}
	}
	s.trendingOnce.Do(func() { s.trending = Trending(s.entries, TrendingLimit) })
	return append([]string(nil), s.trending...)
}

// TopRated returns the top TopRatedLimit rated IDs.
// The result is computed once per snapshot.
func (s *Snapshot) TopRated() []string {
	if s == nil {
		return []string{}
	}
	s.topOnce.Do(func() { s.topRated = TopRated(s.entries, TopRatedLimit) })
	return append([]string(nil), s.topRated...)
}
