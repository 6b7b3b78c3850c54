// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
)

// Middleware establishes the tenant of every inbound request. Requests whose
// candidate matches no tenant carry on unscoped, it is up to the route guards to
// decide whether that is acceptable.
type Middleware struct {
	lookup LookupInterface
	header string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) resolve(ctx context.Context, candidate string, source Source) (context.Context, error) {
	// the span ends here, downstream handlers keep the caller's context
	spanCtx, span := m.tracer.Start(ctx, "tenant.Middleware.resolve")
	defer span.End()

	span.SetAttributes(attribute.String("tenant.source", string(source)))

	if candidate == "" {
		m.count(source, "unresolved")
		return ctx, nil
	}

	t, err := m.lookup.Lookup(spanCtx, candidate)
	if err != nil {
		return ctx, err
	}

	if t == nil {
		m.logger.Debugf("no tenant matches candidate %q from %s", candidate, source)
		m.count(source, "unresolved")
		return ctx, nil
	}

	scoped, err := tenancy.Establish(ctx, t)
	if err != nil {
		return ctx, err
	}

	span.SetAttributes(attribute.String("tenant.id", t.ID))
	m.count(source, "resolved")

	return scoped, nil
}

func (m *Middleware) count(source Source, outcome string) {
	m.monitor.IncTenantResolutionMetric(map[string]string{"source": string(source), "outcome": outcome})
}

// HTTPMiddleware resolves the tenant from the configured header or the host.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		candidate, source := Candidate(r, m.header)

		ctx, err := m.resolve(r.Context(), candidate, source)
		if err != nil {
			httptypes.WriteError(w, err, m.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GRPCInterceptor resolves the tenant from the header metadata or the :authority.
func (m *Middleware) GRPCInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	candidate, source := "", SourceNone

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(strings.ToLower(m.header)); len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			candidate, source = strings.TrimSpace(v[0]), SourceHeader
		} else if v := md.Get(":authority"); len(v) > 0 {
			if c := HostCandidate(v[0]); c != "" {
				candidate, source = c, SourceSubdomain
			}
		}
	}

	ctx, err := m.resolve(ctx, candidate, source)
	if err != nil {
		m.logger.Errorf("tenant resolution failed: %v", err)
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return handler(ctx, req)
}

func NewMiddleware(lookup LookupInterface, header string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.lookup = lookup
	m.header = header

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}

