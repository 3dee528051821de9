package catalog

import "context"

// SortField is a column used to order a page scan.
type SortField struct {
	Column     string
	Descending bool
}

// DefaultOrder is the deterministic total order of a full scan.
var DefaultOrder = []SortField{
	{Column: "category"},
	{Column: "name"},
}

// PageQuery describes one bounded page of a table scan.
type PageQuery struct {
	EnabledOnly bool
	OrderBy     []SortField
	Offset      int
	Limit       int
}

// Store is the remote catalog store.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Ordering: ScanPage must apply OrderBy as a stable total order so that
//     consecutive offsets neither skip nor repeat rows.
//   - End of data: returning fewer than Limit rows is the authoritative
//     end-of-data signal.
//   - Errors: GetByID returns ErrNotFound (possibly wrapped) when absent.
type Store interface {
	ScanPage(ctx context.Context, q PageQuery) ([]Row, error)
	GetByID(ctx context.Context, id string) (Row, error)
}
