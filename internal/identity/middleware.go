// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package identity trusts the principal asserted by an authenticating gateway in
// front of the service. It is only wired when token authentication is disabled.
package identity

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
	"github.com/canonical/academy-service/pkg/authentication"
)

const (
	// IDHeader carries the id of the principal authenticated by the gateway
	IDHeader = "X-Authenticated-Principal-Id"
	// EmailHeader carries its email, optional
	EmailHeader = "X-Authenticated-Principal-Email"
)

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func principal(id, email string) *types.Principal {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	return &types.Principal{ID: id, Email: strings.TrimSpace(email)}
}

// HTTPMiddleware attaches the asserted principal, requests without one stay anonymous.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		ctx := r.Context()
		if p := principal(r.Header.Get(IDHeader), r.Header.Get(EmailHeader)); p != nil {
			ctx = authentication.WithPrincipal(ctx, p)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) GRPCInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	_, span := m.tracer.Start(ctx, "identity.Middleware.GRPCInterceptor")
	defer span.End()

	// metadata keys are lowercased
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		var id, email string
		if v := md.Get(strings.ToLower(IDHeader)); len(v) > 0 {
			id = v[0]
		}
		if v := md.Get(strings.ToLower(EmailHeader)); len(v) > 0 {
			email = v[0]
		}

		if p := principal(id, email); p != nil {
			ctx = authentication.WithPrincipal(ctx, p)
		}
	}

	return handler(ctx, req)
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
