// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
	"github.com/canonical/academy-service/pkg/authentication"
)

// Guard enforces the tenant declaration of a route. Every tenant aware route is
// wrapped with exactly one of Public or RequireMember, optionally followed by
// RequireRole.
type Guard struct {
	memberships MembershipReaderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// membership returns the membership of principalID in tenantID, reusing the one
// already attached to ctx when it matches.
func (g *Guard) membership(ctx context.Context, tenantID, principalID string) (*types.Membership, error) {
	if m, ok := tenancy.MembershipFromContext(ctx); ok && m.TenantID == tenantID && m.PrincipalID == principalID {
		return m, nil
	}

	return g.memberships.GetMembership(ctx, principalID)
}

// Enrich attaches the caller's membership when the request has both a tenant and
// a principal. Nothing here ever rejects a request.
func (g *Guard) Enrich(ctx context.Context) context.Context {
	spanCtx, span := g.tracer.Start(ctx, "tenant.Guard.Enrich")
	defer span.End()

	tenantID, ok := tenancy.FromContext(ctx)
	if !ok {
		return ctx
	}

	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		return ctx
	}

	m, err := g.membership(spanCtx, tenantID, principal.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			g.logger.Warnf("membership lookup failed on public route: %v", err)
		}
		return ctx
	}

	return tenancy.WithMembership(ctx, m)
}

// Member requires an established tenant, an authenticated principal and a
// membership of that principal in the tenant, which is attached to the returned context.
func (g *Guard) Member(ctx context.Context) (context.Context, error) {
	spanCtx, span := g.tracer.Start(ctx, "tenant.Guard.Member")
	defer span.End()

	tenantID, ok := tenancy.FromContext(ctx)
	if !ok {
		g.reject(tenancy.StageUnresolved, "tenant_missing")
		return ctx, tenancy.ErrTenantContextMissing
	}

	principal, ok := authentication.PrincipalFromContext(ctx)
	if !ok {
		g.reject(tenancy.StageTenantResolved, "unauthenticated")
		return ctx, httptypes.ErrUnauthorized
	}

	m, err := g.membership(spanCtx, tenantID, principal.ID)
	if errors.Is(err, storage.ErrNotFound) {
		g.reject(tenancy.StageAuthenticated, "not_member")
		g.logger.Security().TenantBoundaryViolation(principal.ID, tenantID, "not_member")
		return ctx, tenancy.ErrNotMember
	}

	if err != nil {
		return ctx, fmt.Errorf("failed to resolve membership: %w", err)
	}

	return tenancy.WithMembership(ctx, m), nil
}

// Authorize checks the attached membership holds one of roles.
func (g *Guard) Authorize(ctx context.Context, roles ...types.Role) error {
	m, err := tenancy.RequireMembership(ctx)
	if err != nil {
		g.logger.Errorf("role check without membership, route is missing RequireMember")
		return err
	}

	if !slices.Contains(roles, m.Role) {
		g.reject(tenancy.StageMembershipAttached, "role_not_permitted")
		g.logger.Security().AuthzFailure(m.PrincipalID, fmt.Sprintf("tenant:%s role:%s", m.TenantID, m.Role))
		return tenancy.ErrRoleNotPermitted
	}

	return nil
}

func (g *Guard) reject(stage tenancy.Stage, reason string) {
	g.monitor.IncGuardRejectionMetric(map[string]string{"stage": stage.String(), "reason": reason})
}

// Public declares a route that works with or without a tenant.
func (g *Guard) Public() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(g.Enrich(r.Context())))
		})
	}
}

// RequireMember declares a route reserved to members of the request tenant.
func (g *Guard) RequireMember() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := g.Member(r.Context())
			if err != nil {
				httptypes.WriteError(w, err, g.logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole narrows a RequireMember route down to the given roles.
func (g *Guard) RequireRole(roles ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Authorize(r.Context(), roles...); err != nil {
				httptypes.WriteError(w, err, g.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func NewGuard(memberships MembershipReaderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Guard {
	g := new(Guard)

	g.memberships = memberships

	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}
