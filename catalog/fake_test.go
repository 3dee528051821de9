package catalog

import (
	"context"
	"fmt"
	"sync"
)

// memStore serves rows already filtered and ordered.
type memStore struct {
	mu      sync.Mutex
	rows    []Row
	queries []PageQuery
	failAt  int
	failErr error
	onScan  func(q PageQuery)
}

func newMemStore(rows []Row) *memStore {
	return &memStore{rows: rows, failAt: -1}
}

func (s *memStore) ScanPage(_ context.Context, q PageQuery) ([]Row, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	hook := s.onScan
	failAt, failErr := s.failAt, s.failErr
	rows := s.rows
	s.mu.Unlock()

	if hook != nil {
		hook(q)
	}
	if failErr != nil && q.Offset == failAt {
		return nil, failErr
	}
	if q.Offset >= len(rows) {
		return []Row{}, nil
	}
	end := min(q.Offset+q.Limit, len(rows))
	page := make([]Row, end-q.Offset)
	copy(page, rows[q.Offset:end])
	return page, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return Row{}, fmt.Errorf("lookup %q: %w", id, ErrNotFound)
}

func (s *memStore) fail(offset int, err error) {
	s.mu.Lock()
	s.failAt, s.failErr = offset, err
	s.mu.Unlock()
}

func (s *memStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func (s *memStore) offsets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.queries))
	for i, q := range s.queries {
		out[i] = q.Offset
	}
	return out
}

// funcStore delegates to per-test functions.
type funcStore struct {
	scan func(ctx context.Context, q PageQuery) ([]Row, error)
	get  func(ctx context.Context, id string) (Row, error)
}

func (s funcStore) ScanPage(ctx context.Context, q PageQuery) ([]Row, error) {
	return s.scan(ctx, q)
}

func (s funcStore) GetByID(ctx context.Context, id string) (Row, error) {
	return s.get(ctx, id)
}

func makeRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			ID:       fmt.Sprintf("tool-%05d", i),
			Name:     fmt.Sprintf("Tool %d", i),
			Category: "data",
			Enabled:  true,
		}
	}
	return rows
}
