package secret

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type stubProvider struct {
	name   string
	values map[string]string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Resolve(_ context.Context, ref string) (string, error) {
	return s.values[ref], nil
}

func (s *stubProvider) Close() error { return nil }

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("TC_HOST", "db.internal")

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"postgres://${TC_HOST}/catalog", "postgres://db.internal/catalog", nil},
		{"cost $$5", "cost $5", nil},
		{"plain", "plain", nil},
		{"${TC_MISSING_ONE}-${TC_MISSING_ONE}", "", ErrMissingEnv},
	}
	for _, tt := range tests {
		got, err := ExpandEnvStrict(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExpandEnvStrict(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExpandEnvStrict(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestParseSecretRef(t *testing.T) {
	tests := []struct {
		in       string
		provider string
		ref      string
		ok       bool
	}{
		{"secretref:env:JWT_SECRET", "env", "JWT_SECRET", true},
		{"secretref:file:nested/key:with:colons", "file", "nested/key:with:colons", true},
		{"secretref:env:", "", "", false},
		{"secretref::x", "", "", false},
		{"not-a-ref", "", "", false},
	}
	for _, tt := range tests {
		p, r, ok := ParseSecretRef(tt.in)
		if p != tt.provider || r != tt.ref || ok != tt.ok {
			t.Errorf("ParseSecretRef(%q) = (%q, %q, %v)", tt.in, p, r, ok)
		}
	}
}

func TestResolver_ResolveValue(t *testing.T) {
	t.Setenv("TC_PROVIDER", "stub")
	r := NewResolver(true, &stubProvider{name: "stub", values: map[string]string{"key": "s3cr3t", "blank": ""}})
	ctx := context.Background()

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"secretref:stub:key", "s3cr3t", nil},
		{"secretref:${TC_PROVIDER}:key", "s3cr3t", nil},
		{"Bearer secretref:stub:key", "Bearer s3cr3t", nil},
		{"a=secretref:stub:key b=secretref:stub:key", "a=s3cr3t b=s3cr3t", nil},
		{"no refs here", "no refs here", nil},
		{"secretref:vault:key", "", ErrProviderNotRegistered},
		{"secretref:stub:blank", "", ErrEmptySecret},
	}
	for _, tt := range tests {
		got, err := r.ResolveValue(ctx, tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolveValue(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ResolveValue(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestResolver_NilExpandsOnly(t *testing.T) {
	t.Setenv("TC_X", "x")
	var r *Resolver
	got, err := r.ResolveValue(context.Background(), "${TC_X}:secretref:stub:key")
	if err != nil || got != "x:secretref:stub:key" {
		t.Errorf("ResolveValue() = (%q, %v)", got, err)
	}
}

func TestResolver_ResolveMap(t *testing.T) {
	r := NewResolver(false, &stubProvider{name: "stub", values: map[string]string{"k": "v"}})
	got, err := r.ResolveMap(context.Background(), map[string]string{"X-Key": "secretref:stub:k", "Plain": "p"})
	if err != nil {
		t.Fatalf("ResolveMap: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]string{"X-Key": "v", "Plain": "p"}) {
		t.Errorf("ResolveMap() = %v", got)
	}
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("TC_SECRET", "value")
	p := EnvProvider{}
	if v, err := p.Resolve(context.Background(), "TC_SECRET"); err != nil || v != "value" {
		t.Errorf("Resolve = (%q, %v)", v, err)
	}
	if _, err := p.Resolve(context.Background(), "TC_DEFINITELY_UNSET"); !errors.Is(err, ErrMissingEnv) {
		t.Errorf("unset error = %v, want ErrMissingEnv", err)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "anon_key"), []byte("key-123\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := FileProvider{Dir: dir}

	if v, err := p.Resolve(context.Background(), "anon_key"); err != nil || v != "key-123" {
		t.Errorf("Resolve = (%q, %v)", v, err)
	}
	if _, err := p.Resolve(context.Background(), "../etc/passwd"); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("escape error = %v, want ErrInvalidRef", err)
	}
	if _, err := p.Resolve(context.Background(), "missing"); err == nil {
		t.Error("missing file resolved")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if got := reg.List(); !reflect.DeepEqual(got, []string{"env", "file"}) {
		t.Fatalf("List() = %v", got)
	}

	p, err := reg.Create("file", map[string]any{"dir": "/tmp/secrets"})
	if err != nil || p.(FileProvider).Dir != "/tmp/secrets" {
		t.Errorf("Create(file) = (%v, %v)", p, err)
	}
	if _, err := reg.Create("vault", nil); !errors.Is(err, ErrProviderNotRegistered) {
		t.Errorf("Create(vault) error = %v", err)
	}
	if err := reg.Register("env", func(map[string]any) (Provider, error) { return EnvProvider{}, nil }); !errors.Is(err, ErrInvalidRegistration) {
		t.Errorf("duplicate Register error = %v", err)
	}
	if err := reg.Register(" ", nil); !errors.Is(err, ErrInvalidRegistration) {
		t.Errorf("blank Register error = %v", err)
	}
}
