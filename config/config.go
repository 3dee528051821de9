package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonwraymond/toolcatalog/observe"
	"github.com/jonwraymond/toolcatalog/resilience"
	"github.com/jonwraymond/toolcatalog/secret"
	"github.com/jonwraymond/toolcatalog/store/postgres"
	"github.com/jonwraymond/toolcatalog/store/rest"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "TOOLCATALOG"

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Config holds all runtime configuration.
type Config struct {
	Backend      string            `mapstructure:"backend"` // postgres|rest
	Postgres     postgres.Config   `mapstructure:"postgres"`
	REST         RESTConfig        `mapstructure:"rest"`
	Catalog      CatalogConfig     `mapstructure:"catalog"`
	Stats        StatsConfig       `mapstructure:"stats"`
	Recent       RecentConfig      `mapstructure:"recent"`
	FeaturedFile string            `mapstructure:"featured_file"`
	Secrets      SecretsConfig     `mapstructure:"secrets"`
	Resilience   resilience.Config `mapstructure:"resilience"`
	Observe      observe.Config    `mapstructure:"observe"`
}

// RESTConfig configures the HTTP backend and its credentials.
type RESTConfig struct {
	BaseURL      string             `mapstructure:"base_url"`
	Timeout      time.Duration      `mapstructure:"timeout"`
	MaxBodyBytes int64              `mapstructure:"max_body_bytes"`
	APIKey       string             `mapstructure:"api_key"`
	ServiceToken ServiceTokenConfig `mapstructure:"service_token"`
}

// Client returns the client settings.
func (c RESTConfig) Client() rest.Config {
	return rest.Config{BaseURL: c.BaseURL, Timeout: c.Timeout, MaxBodyBytes: c.MaxBodyBytes}
}

// ServiceTokenConfig configures signed bearer tokens. Empty Secret disables
// them and the API key is sent as the bearer instead.
type ServiceTokenConfig struct {
	Secret string        `mapstructure:"secret"`
	Role   string        `mapstructure:"role"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// CatalogConfig configures full scans.
type CatalogConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// StatsConfig configures the statistics cache.
type StatsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RecentConfig configures the recently used list.
type RecentConfig struct {
	Path  string `mapstructure:"path"` // SQLite file; empty lets the caller pick a location
	Limit int    `mapstructure:"limit"`
}

// SecretsConfig configures secret resolution.
type SecretsConfig struct {
	Dir    string `mapstructure:"dir"` // directory of the file provider
	Strict bool   `mapstructure:"strict"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendREST)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_conns", 4)
	v.SetDefault("postgres.simple_protocol", false)

	v.SetDefault("rest.base_url", "")
	v.SetDefault("rest.timeout", 30*time.Second)
	v.SetDefault("rest.max_body_bytes", rest.DefaultMaxBodyBytes)
	v.SetDefault("rest.api_key", "")
	v.SetDefault("rest.service_token.secret", "")
	v.SetDefault("rest.service_token.role", "anon")
	v.SetDefault("rest.service_token.issuer", "toolcatalog")
	v.SetDefault("rest.service_token.ttl", time.Hour)

	v.SetDefault("catalog.page_size", 1000)
	v.SetDefault("stats.ttl", 5*time.Minute)
	v.SetDefault("recent.path", "")
	v.SetDefault("recent.limit", 8)
	v.SetDefault("featured_file", "")

	v.SetDefault("secrets.dir", "/run/secrets")
	v.SetDefault("secrets.strict", true)

	v.SetDefault("resilience.timeout", 10*time.Second)
	v.SetDefault("resilience.retry.max_attempts", 3)
	v.SetDefault("resilience.retry.initial_delay", 200*time.Millisecond)
	v.SetDefault("resilience.retry.max_delay", 5*time.Second)
	v.SetDefault("resilience.retry.backoff", "exponential")
	v.SetDefault("resilience.retry.jitter", true)
	v.SetDefault("resilience.circuit.max_failures", 5)
	v.SetDefault("resilience.circuit.reset_timeout", 30*time.Second)
	v.SetDefault("resilience.rate_limit.rate", 0.0)
	v.SetDefault("resilience.rate_limit.burst", 0)
	v.SetDefault("resilience.rate_limit.max_wait", time.Duration(0))
	v.SetDefault("resilience.bulkhead.max_concurrent", 0)
	v.SetDefault("resilience.bulkhead.max_wait", time.Duration(0))

	v.SetDefault("observe.service_name", "toolcatalog")
	v.SetDefault("observe.version", "")
	v.SetDefault("observe.tracing.enabled", false)
	v.SetDefault("observe.tracing.exporter", "none")
	v.SetDefault("observe.tracing.sample_pct", 1.0)
	v.SetDefault("observe.metrics.enabled", false)
	v.SetDefault("observe.metrics.exporter", "none")
	v.SetDefault("observe.logging.enabled", true)
	v.SetDefault("observe.logging.level", "info")
}

// BindEnv makes TOOLCATALOG_* variables override file values on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load applies defaults to v, decodes it and validates the result.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return ErrMissingDSN
		}
	case BackendREST:
		if strings.TrimSpace(c.REST.BaseURL) == "" {
			return ErrMissingBaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}

	if c.Catalog.PageSize < 1 {
		return ErrInvalidPageSize
	}
	if c.Stats.TTL <= 0 {
		return ErrInvalidTTL
	}
	if c.Recent.Limit < 1 {
		return ErrInvalidRecentLimit
	}
	if err := c.Observe.Validate(); err != nil {
		return fmt.Errorf("config: observe: %w", err)
	}
	return nil
}

// NewResolver creates the secret resolver described by c.Secrets with the
// env and file providers.
func (c *Config) NewResolver() (*secret.Resolver, error) {
	reg := secret.NewRegistry()
	env, err := reg.Create("env", nil)
	if err != nil {
		return nil, err
	}
	file, err := reg.Create("file", map[string]any{"dir": c.Secrets.Dir})
	if err != nil {
		return nil, err
	}
	return secret.NewResolver(c.Secrets.Strict, env, file), nil
}

// ResolveSecrets expands and resolves the credential-bearing fields in place.
func (c *Config) ResolveSecrets(ctx context.Context, r *secret.Resolver) error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"postgres.dsn", &c.Postgres.DSN},
		{"rest.base_url", &c.REST.BaseURL},
		{"rest.api_key", &c.REST.APIKey},
		{"rest.service_token.secret", &c.REST.ServiceToken.Secret},
	}
	for _, f := range fields {
		if *f.ptr == "" {
			continue
		}
		v, err := r.ResolveValue(ctx, *f.ptr)
		if err != nil {
			return fmt.Errorf("config: resolve %s: %w", f.name, err)
		}
		*f.ptr = v
	}
	return nil
}
