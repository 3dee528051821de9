package postgres

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jonwraymond/toolcatalog/catalog"
)

const (
	toolsTable = "tools"
	statsTable = "tool_stats"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// toolColumns are selected in catalog.Row field order. Nullable text columns
// collapse to empty strings.
var toolColumns = []string{
	"id",
	"name",
	"COALESCE(description, '')",
	"COALESCE(category, '')",
	"COALESCE(icon, '')",
	"COALESCE(input_type, '')",
	"COALESCE(output_type, '')",
	"COALESCE(kind, '')",
	"COALESCE(popular, false)",
	"enabled",
}

var statsColumns = []string{
	"tool_id",
	"COALESCE(view_count, 0)",
	"COALESCE(average_rating, 0)",
	"COALESCE(total_ratings, 0)",
}

var sortable = map[string]bool{
	"id": true, "name": true, "description": true, "category": true,
	"input_type": true, "output_type": true, "kind": true, "popular": true,
}

// buildScanPage renders one page query over the tools table.
func buildScanPage(q catalog.PageQuery) (string, []any, error) {
	if q.Offset < 0 || q.Limit < 1 {
		return "", nil, fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, q.Offset, q.Limit)
	}

	b := psql.Select(toolColumns...).From(toolsTable)
	if q.EnabledOnly {
		b = b.Where(sq.Eq{"enabled": true})
	}

	order := q.OrderBy
	if len(order) == 0 {
		order = catalog.DefaultOrder
	}
	for _, f := range order {
		if !sortable[f.Column] {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, f.Column)
		}
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		b = b.OrderBy(f.Column + " " + dir)
	}

	return b.Limit(uint64(q.Limit)).Offset(uint64(q.Offset)).ToSql()
}

func buildGetByID(id string) (string, []any, error) {
	return psql.Select(toolColumns...).
		From(toolsTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func buildScanStats() (string, []any, error) {
	return psql.Select(statsColumns...).From(statsTable).ToSql()
}
