package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/jonwraymond/toolcatalog/auth"
	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/config"
	"github.com/jonwraymond/toolcatalog/directory"
	"github.com/jonwraymond/toolcatalog/health"
	"github.com/jonwraymond/toolcatalog/observe"
	"github.com/jonwraymond/toolcatalog/recent"
	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/stats"
	"github.com/jonwraymond/toolcatalog/store"
	"github.com/jonwraymond/toolcatalog/store/postgres"
	"github.com/jonwraymond/toolcatalog/store/rest"
)

// backend is what both store implementations provide.
type backend interface {
	catalog.Store
	stats.Source
	Ping(ctx context.Context) error
}

// app is the composition root shared by all commands.
type app struct {
	cfg    config.Config
	obs    observe.Observer
	logger observe.Logger

	store    *store.Catalog
	stats    *stats.Cache
	list     *catalog.ListView
	dir      *directory.Directory
	recent   *recent.List
	health   *health.Aggregator
	pageSize int

	closers []func() error
}

func newApp(ctx context.Context) (_ *app, err error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, pageSize: cfg.Catalog.PageSize}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	resolver, err := cfg.NewResolver()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, resolver.Close)
	if err := a.cfg.ResolveSecrets(ctx, resolver); err != nil {
		return nil, err
	}

	if a.obs, err = observe.NewObserver(ctx, cfg.Observe); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.obs.Shutdown(sctx)
	})
	a.logger = a.obs.Logger()

	mw, err := observe.MiddlewareFromObserver(a.obs)
	if err != nil {
		return nil, err
	}
	exec := resilience.NewExecutorFromConfig(a.cfg.Resilience)

	be, err := a.openBackend(ctx)
	if err != nil {
		return nil, err
	}

	opts := []store.Option{
		store.WithMiddleware(mw),
		store.WithExecutor(exec),
		store.WithBackend(a.cfg.Backend),
	}
	if a.store, err = store.NewCatalog(be, opts...); err != nil {
		return nil, err
	}
	statsSource, err := store.NewStats(be, opts...)
	if err != nil {
		return nil, err
	}
	if a.stats, err = stats.NewCache(statsSource,
		stats.WithTTL(a.cfg.Stats.TTL),
		stats.WithLogger(a.logger),
		stats.WithMetrics(mw.Metrics()),
	); err != nil {
		return nil, err
	}

	a.list = catalog.NewListView(a.store, a.logger, catalog.WithPageSize(a.pageSize))
	a.closers = append(a.closers, func() error { a.list.Close(); return nil })

	var featured directory.Featured
	if path := a.cfg.FeaturedFile; path != "" {
		if featured, err = directory.LoadFeatured(path); err != nil {
			return nil, err
		}
	}
	if a.dir, err = directory.New(a.list, a.stats, featured); err != nil {
		return nil, err
	}

	if a.recent, err = a.openRecent(ctx); err != nil {
		return nil, err
	}

	a.health = health.NewAggregator(health.AggregatorConfig{})
	a.health.Register(health.NewStoreChecker("store", a.store))
	a.health.Register(health.NewStatsFreshnessChecker(a.stats))
	if cb := exec.CircuitBreaker(); cb != nil {
		a.health.Register(health.NewCircuitChecker("circuit", cb))
	}

	return a, nil
}

func (a *app) openBackend(ctx context.Context) (backend, error) {
	switch a.cfg.Backend {
	case config.BackendPostgres:
		pool, err := postgres.Open(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		return postgres.New(pool), nil

	case config.BackendREST:
		tr := &auth.Transport{APIKey: a.cfg.REST.APIKey}
		if tok := a.cfg.REST.ServiceToken; tok.Secret != "" {
			src, err := auth.NewServiceTokenSource(auth.ServiceTokenConfig{
				Secret:  []byte(tok.Secret),
				Role:    tok.Role,
				Issuer:  tok.Issuer,
				Subject: a.cfg.Observe.ServiceName,
				TTL:     tok.TTL,
			})
			if err != nil {
				return nil, err
			}
			tr.Tokens = src
		}
		hc := &http.Client{Transport: tr, Timeout: a.cfg.REST.Timeout}
		c, err := rest.New(a.cfg.REST.Client(), rest.WithHTTPClient(hc))
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, a.cfg.Backend)
	}
}

// openRecent opens the SQLite list at recent.path, defaulting to the user
// cache directory. Without a usable cache directory the list lives in memory.
func (a *app) openRecent(ctx context.Context) (*recent.List, error) {
	opts := []recent.Option{recent.WithLimit(a.cfg.Recent.Limit), recent.WithLogger(a.logger)}

	path := a.cfg.Recent.Path
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return recent.NewList(recent.NewMemoryStore(), opts...)
		}
		dir = filepath.Join(dir, "toolcatalog")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("recent: %w", err)
		}
		path = filepath.Join(dir, "recent.db")
	}

	s, err := recent.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, s.Close)
	return recent.NewList(s, opts...)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close(context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
