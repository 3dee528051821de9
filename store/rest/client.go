package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/stats"
)

const (
	apiPrefix   = "/rest/v1/"
	toolsTable  = "tools"
	statsTable  = "tool_stats"
	statsSelect = "tool_id,view_count,average_rating,total_ratings"

	// DefaultMaxBodyBytes bounds one response body.
	DefaultMaxBodyBytes int64 = 32 << 20

	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Its transport is expected to add
// credentials.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client reads the tools and tool_stats tables over HTTP.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: non-2xx responses return *StatusError; 4xx other than 408 and
//     429 are marked resilience.Permanent. GetByID returns
//     catalog.ErrNotFound for an empty result.
type Client struct {
	base    *url.URL
	http    *http.Client
	maxBody int64
}

var (
	_ catalog.Store = (*Client)(nil)
	_ stats.Source  = (*Client)(nil)
)

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, ErrMissingBaseURL
	}
	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		maxBody: cfg.MaxBodyBytes,
	}
	if c.maxBody <= 0 {
		c.maxBody = DefaultMaxBodyBytes
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ScanPage implements catalog.Store.
func (c *Client) ScanPage(ctx context.Context, q catalog.PageQuery) ([]catalog.Row, error) {
	v, err := pageValues(q)
	if err != nil {
		return nil, err
	}
	var rows []catalog.Row
	if err := c.get(ctx, toolsTable, v, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID implements catalog.Store.
func (c *Client) GetByID(ctx context.Context, id string) (catalog.Row, error) {
	v := url.Values{}
	v.Set("select", "*")
	v.Set("id", "eq."+id)
	v.Set("limit", "1")

	var rows []catalog.Row
	if err := c.get(ctx, toolsTable, v, &rows); err != nil {
		return catalog.Row{}, err
	}
	if len(rows) == 0 {
		return catalog.Row{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
	}
	return rows[0], nil
}

// ScanAll implements stats.Source.
func (c *Client) ScanAll(ctx context.Context) ([]stats.Row, error) {
	v := url.Values{}
	v.Set("select", statsSelect)

	var rows []stats.Row
	if err := c.get(ctx, statsTable, v, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Ping requests an empty page of the tools table.
func (c *Client) Ping(ctx context.Context) error {
	v := url.Values{}
	v.Set("select", "id")
	v.Set("limit", "0")
	var rows []json.RawMessage
	return c.get(ctx, toolsTable, v, &rows)
}

func pageValues(q catalog.PageQuery) (url.Values, error) {
	order := q.OrderBy
	if len(order) == 0 {
		order = catalog.DefaultOrder
	}
	parts := make([]string, 0, len(order))
	for _, f := range order {
		if f.Column == "" || strings.ContainsAny(f.Column, ",.()&=? ") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, f.Column)
		}
		dir := ".asc"
		if f.Descending {
			dir = ".desc"
		}
		parts = append(parts, f.Column+dir)
	}

	v := url.Values{}
	v.Set("select", "*")
	if q.EnabledOnly {
		v.Set("enabled", "eq.true")
	}
	v.Set("order", strings.Join(parts, ","))
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v, nil
}

func (c *Client) get(ctx context.Context, table string, query url.Values, out any) error {
	u := c.base.JoinPath(apiPrefix, table)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("rest: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		if permanentStatus(resp.StatusCode) {
			return resilience.Permanent(serr)
		}
		return serr
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(out); err != nil {
		return fmt.Errorf("rest: decode %s: %w", table, err)
	}
	return nil
}

func permanentStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return false
	}
	return code >= 400 && code < 500
}
