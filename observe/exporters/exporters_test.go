package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestNewTracingExporter_Unknown(t *testing.T) {
	_, err := NewTracingExporter(context.Background(), "zipkin", Options{})
	if !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("error = %v, want ErrUnknownExporter", err)
	}
}

func TestNewTracingExporter_None(t *testing.T) {
	for _, name := range []string{"none", ""} {
		exp, err := NewTracingExporter(context.Background(), name, Options{})
		if err != nil || exp != nil {
			t.Errorf("NewTracingExporter(%q) = (%v, %v), want (nil, nil)", name, exp, err)
		}
	}
}

func TestNewTracingExporter_Stdout(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTracingExporter(context.Background(), "stdout", Options{Writer: &buf})
	if err != nil {
		t.Fatalf("stdout exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	_, err := NewTracingExporter(context.Background(), "otlp", Options{})
	if !errors.Is(err, ErrEndpointNotConfigured) {
		t.Fatalf("error = %v, want ErrEndpointNotConfigured", err)
	}
}

func TestNewTracingExporter_OTLPWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")

	exp, err := NewTracingExporter(context.Background(), "otlp", Options{})
	if err != nil {
		t.Fatalf("otlp exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestNewMetricsReader(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	tests := []struct {
		name    string
		wantNil bool
		wantErr error
	}{
		{name: "stdout"},
		{name: "none", wantNil: true},
		{name: "", wantNil: true},
		{name: "otlp", wantNil: true, wantErr: ErrEndpointNotConfigured},
		{name: "statsd", wantNil: true, wantErr: ErrUnknownExporter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reader, err := NewMetricsReader(context.Background(), tc.name, Options{Writer: &bytes.Buffer{}})
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (reader == nil) != tc.wantNil {
				t.Errorf("reader nil = %v, want %v", reader == nil, tc.wantNil)
			}
		})
	}
}
