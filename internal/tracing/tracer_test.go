// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 0, want: sdktrace.AlwaysSample().Description()},
		{ratio: 1, want: sdktrace.AlwaysSample().Description()},
		{ratio: 2, want: sdktrace.AlwaysSample().Description()},
		{ratio: 0.25, want: sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()},
	}

	for _, tt := range tests {
		if got := sampler(tt.ratio).Description(); got != tt.want {
			t.Errorf("sampler(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestNoopTracer(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "tracing.TestNoopTracer")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}

	if span.SpanContext().IsSampled() {
		t.Error("noop spans must not be sampled")
	}

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestConfigServiceName(t *testing.T) {
	if got := NewNoopConfig().service(); got != "academy-service" {
		t.Errorf("expected default service name, got %q", got)
	}

	cfg := NewConfig(true, "", "", 1, nil)
	cfg.ServiceName = "academy-worker"

	if got := cfg.service(); got != "academy-worker" {
		t.Errorf("expected configured service name, got %q", got)
	}
}
