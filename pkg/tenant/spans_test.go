// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/types"
)

// recordedTracer returns a tracer that keeps every span it ends in memory.
func recordedTracer(t *testing.T) (trace.Tracer, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return tp.Tracer("test"), recorder
}

func endedSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()

	for _, s := range recorder.Ended() {
		if s.Name() == name {
			return s
		}
	}

	t.Fatalf("span %s was not ended", name)
	return nil
}

func TestMiddlewareHandsTheCallerSpanDownstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tracer, recorder := recordedTracer(t)
	logger := logging.NewNoopLogger()

	acme := &types.Tenant{ID: tenantUUID, Slug: "acme", Enabled: true}

	mockLookup := NewMockLookupInterface(ctrl)
	mockLookup.EXPECT().Lookup(gomock.Any(), tenantUUID).DoAndReturn(
		func(ctx context.Context, _ string) (*types.Tenant, error) {
			if !trace.SpanFromContext(ctx).IsRecording() {
				t.Errorf("lookup should run under the resolution span")
			}
			return acme, nil
		},
	)

	m := NewMiddleware(mockLookup, "X-Tenant-Id", tracer, monitoring.NewNoopMonitor("test", logger), logger)

	ctx, request := tracer.Start(context.Background(), "request")
	defer request.End()

	var downstream trace.Span
	var scoped bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		downstream = trace.SpanFromContext(r.Context())
		_, scoped = tenancy.FromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	r.Header.Set("X-Tenant-Id", tenantUUID)

	m.HTTPMiddleware(next).ServeHTTP(httptest.NewRecorder(), r)

	if !scoped {
		t.Fatalf("expected the tenant to be established downstream")
	}

	if downstream.SpanContext().SpanID() != request.SpanContext().SpanID() {
		t.Errorf("downstream span = %s, want the caller span %s", downstream.SpanContext().SpanID(), request.SpanContext().SpanID())
	}

	resolved := endedSpan(t, recorder, "tenant.Middleware.resolve")
	if resolved.Parent().SpanID() != request.SpanContext().SpanID() {
		t.Errorf("resolution span parent = %s, want %s", resolved.Parent().SpanID(), request.SpanContext().SpanID())
	}
}

func TestGuardHandsTheCallerSpanDownstream(t *testing.T) {
	alice := &types.Principal{ID: "alice", Email: "alice@example.com"}
	membership := &types.Membership{ID: "m-1", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleStudent}

	tests := []struct {
		name string
		span string
		call func(*Guard, context.Context) (context.Context, error)
	}{
		{
			name: "member",
			span: "tenant.Guard.Member",
			call: func(g *Guard, ctx context.Context) (context.Context, error) { return g.Member(ctx) },
		},
		{
			name: "enrich",
			span: "tenant.Guard.Enrich",
			call: func(g *Guard, ctx context.Context) (context.Context, error) { return g.Enrich(ctx), nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tracer, recorder := recordedTracer(t)
			logger := logging.NewNoopLogger()

			mockMemberships := NewMockMembershipReaderInterface(ctrl)
			mockMemberships.EXPECT().GetMembership(gomock.Any(), "alice").Return(membership, nil)

			g := NewGuard(mockMemberships, tracer, monitoring.NewNoopMonitor("test", logger), logger)

			ctx, request := tracer.Start(requestContext(t, tenantUUID, alice), "request")
			defer request.End()

			out, err := tt.call(g, ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, ok := tenancy.MembershipFromContext(out); !ok {
				t.Errorf("expected the membership to be attached")
			}

			if got := trace.SpanFromContext(out).SpanContext().SpanID(); got != request.SpanContext().SpanID() {
				t.Errorf("returned span = %s, want the caller span %s", got, request.SpanContext().SpanID())
			}

			endedSpan(t, recorder, tt.span)
		})
	}
}
