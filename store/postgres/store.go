package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/stats"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Config configures the connection pool.
type Config struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int    `mapstructure:"max_conns"`

	// SimpleProtocol disables prepared statements, for use behind PgBouncer.
	SimpleProtocol bool `mapstructure:"simple_protocol"`
}

// Open creates a pool from cfg and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrMissingDSN
	}
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.SimpleProtocol {
		pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// Store reads the tools and tool_stats tables.
//
// Contract:
//   - Concurrency: safe for concurrent use if the Querier is.
//   - Errors: GetByID returns catalog.ErrNotFound for a missing row.
type Store struct {
	db Querier
}

var (
	_ catalog.Store = (*Store)(nil)
	_ stats.Source  = (*Store)(nil)
)

// New creates a Store over db.
func New(db Querier) *Store {
	return &Store{db: db}
}

// ScanPage implements catalog.Store.
func (s *Store) ScanPage(ctx context.Context, q catalog.PageQuery) ([]catalog.Row, error) {
	query, args, err := buildScanPage(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan tools: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.Row, 0, q.Limit)
	for rows.Next() {
		r, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan tools: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: scan tools: %w", err)
	}
	return out, nil
}

// GetByID implements catalog.Store.
func (s *Store) GetByID(ctx context.Context, id string) (catalog.Row, error) {
	query, args, err := buildGetByID(id)
	if err != nil {
		return catalog.Row{}, err
	}
	r, err := scanTool(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Row{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
		}
		return catalog.Row{}, fmt.Errorf("postgres: get tool %s: %w", id, err)
	}
	return r, nil
}

// ScanAll implements stats.Source.
func (s *Store) ScanAll(ctx context.Context) ([]stats.Row, error) {
	query, args, err := buildScanStats()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan stats: %w", err)
	}
	defer rows.Close()

	var out []stats.Row
	for rows.Next() {
		var r stats.Row
		if err := rows.Scan(&r.ToolID, &r.ViewCount, &r.AverageRating, &r.TotalRatings); err != nil {
			return nil, fmt.Errorf("postgres: scan stats: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: scan stats: %w", err)
	}
	return out, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanTool(row pgx.Row) (catalog.Row, error) {
	var r catalog.Row
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Category, &r.Icon,
		&r.InputType, &r.OutputType, &r.Kind, &r.Popular, &r.Enabled,
	)
	return r, err
}
