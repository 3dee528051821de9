package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(yaml)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t, "rest:\n  base_url: https://db.example.com\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Backend", cfg.Backend, BackendREST},
		{"PageSize", cfg.Catalog.PageSize, 1000},
		{"StatsTTL", cfg.Stats.TTL, 5 * time.Minute},
		{"RecentLimit", cfg.Recent.Limit, 8},
		{"RESTTimeout", cfg.REST.Timeout, 30 * time.Second},
		{"TokenRole", cfg.REST.ServiceToken.Role, "anon"},
		{"RetryAttempts", cfg.Resilience.Retry.MaxAttempts, 3},
		{"CircuitFailures", cfg.Resilience.Circuit.MaxFailures, 5},
		{"ServiceName", cfg.Observe.ServiceName, "toolcatalog"},
		{"LogLevel", cfg.Observe.Logging.Level, "info"},
		{"SecretsStrict", cfg.Secrets.Strict, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_FileValues(t *testing.T) {
	cfg, err := Load(newViper(t, `
backend: Postgres
postgres:
  dsn: postgres://localhost/tools
  max_conns: 8
catalog:
  page_size: 250
stats:
  ttl: 90s
resilience:
  retry:
    max_attempts: 5
    backoff: linear
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != BackendPostgres || cfg.Postgres.MaxConns != 8 {
		t.Errorf("postgres settings = %q %+v", cfg.Backend, cfg.Postgres)
	}
	if cfg.Catalog.PageSize != 250 || cfg.Stats.TTL != 90*time.Second {
		t.Errorf("page size = %d, ttl = %v", cfg.Catalog.PageSize, cfg.Stats.TTL)
	}
	if cfg.Resilience.Retry.MaxAttempts != 5 || cfg.Resilience.Retry.Backoff != "linear" {
		t.Errorf("retry = %+v", cfg.Resilience.Retry)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOOLCATALOG_STATS_TTL", "1m")
	t.Setenv("TOOLCATALOG_REST_BASE_URL", "https://env.example.com")

	v := viper.New()
	BindEnv(v)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Stats.TTL != time.Minute {
		t.Errorf("Stats.TTL = %v, want 1m", cfg.Stats.TTL)
	}
	if cfg.REST.BaseURL != "https://env.example.com" {
		t.Errorf("REST.BaseURL = %q", cfg.REST.BaseURL)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown backend", "backend: mysql\n", ErrInvalidBackend},
		{"postgres without dsn", "backend: postgres\n", ErrMissingDSN},
		{"rest without base url", "backend: rest\n", ErrMissingBaseURL},
		{"zero page size", "rest: {base_url: http://x}\ncatalog: {page_size: 0}\n", ErrInvalidPageSize},
		{"zero ttl", "rest: {base_url: http://x}\nstats: {ttl: 0s}\n", ErrInvalidTTL},
		{"zero recent limit", "rest: {base_url: http://x}\nrecent: {limit: 0}\n", ErrInvalidRecentLimit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(newViper(t, tc.yaml)); !errors.Is(err, tc.want) {
				t.Errorf("Load() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestResolveSecrets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "jwt"), []byte("s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TC_TEST_HOST", "db.example.com")
	t.Setenv("TC_TEST_KEY", "anon-key")

	cfg, err := Load(newViper(t, `
rest:
  base_url: https://${TC_TEST_HOST}
  api_key: secretref:env:TC_TEST_KEY
  service_token:
    secret: secretref:file:jwt
secrets:
  dir: `+dir+`
`))
	if err != nil {
		t.Fatal(err)
	}

	r, err := cfg.NewResolver()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := cfg.ResolveSecrets(context.Background(), r); err != nil {
		t.Fatalf("ResolveSecrets() error = %v", err)
	}
	if cfg.REST.BaseURL != "https://db.example.com" {
		t.Errorf("BaseURL = %q", cfg.REST.BaseURL)
	}
	if cfg.REST.APIKey != "anon-key" {
		t.Errorf("APIKey = %q", cfg.REST.APIKey)
	}
	if cfg.REST.ServiceToken.Secret != "s3cret" {
		t.Errorf("ServiceToken.Secret = %q", cfg.REST.ServiceToken.Secret)
	}
	if got := cfg.REST.Client(); got.BaseURL != cfg.REST.BaseURL || got.Timeout != 30*time.Second {
		t.Errorf("Client() = %+v", got)
	}
}

func TestResolveSecrets_MissingEnv(t *testing.T) {
	cfg, err := Load(newViper(t, "rest:\n  base_url: https://x\n  api_key: ${TC_TEST_DEFINITELY_UNSET}\n"))
	if err != nil {
		t.Fatal(err)
	}
	r, _ := cfg.NewResolver()
	if err := cfg.ResolveSecrets(context.Background(), r); err == nil {
		t.Fatal("ResolveSecrets() = nil, want missing env error")
	}
}
