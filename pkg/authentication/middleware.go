// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
)

const bearerPrefix = "Bearer "

type Middleware struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate rejects requests without a valid bearer token.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return m.authenticate(true)
}

// Optional attaches the principal when a bearer token is presented, anonymous
// requests go through. A token that fails verification is still rejected.
func (m *Middleware) Optional() func(http.Handler) http.Handler {
	return m.authenticate(false)
}

func (m *Middleware) authenticate(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found {
				if !required && r.Header.Get("Authorization") == "" {
					next.ServeHTTP(w, r)
					return
				}

				m.logger.Security().AuthnFailure("missing bearer token")
				httptypes.WriteError(w, httptypes.ErrUnauthorized, m.logger)
				return
			}

			principal, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				m.logger.Security().AuthnFailure("invalid token")
				httptypes.WriteError(w, httptypes.ErrUnauthorized, m.logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// GRPCInterceptor is a unary interceptor for gRPC authentication
func (m *Middleware) GRPCInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, span := m.tracer.Start(ctx, "authentication.Middleware.GRPCInterceptor")
	defer span.End()

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "metadata is not provided")
	}

	values := md.Get("authorization")
	if len(values) == 0 || !strings.HasPrefix(values[0], bearerPrefix) {
		return nil, status.Error(codes.Unauthenticated, "bearer token is not provided")
	}

	principal, err := m.verifier.VerifyToken(ctx, strings.TrimPrefix(values[0], bearerPrefix))
	if err != nil {
		m.logger.Debugf("gRPC JWT verification failed: %v", err)
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(WithPrincipal(ctx, principal), req)
}

// getBearerToken only accepts "Bearer <token>" (RFC 6750).
func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if !strings.HasPrefix(bearer, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(bearer, bearerPrefix))

	return token, token != ""
}

func NewMiddleware(verifier TokenVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.verifier = verifier

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
