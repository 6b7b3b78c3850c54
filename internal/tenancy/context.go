// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"strings"

	"github.com/canonical/academy-service/internal/types"
)

type tenantKey struct{}
type unscopedKey struct{}

type ambient struct {
	id     string
	tenant *types.Tenant
}

// WithTenant returns a context in which FromContext reports tenantID.
// An empty tenantID leaves ctx untouched. A context that already carries a different
// tenant is refused with ErrTenantAlreadyEstablished.
func WithTenant(ctx context.Context, tenantID string) (context.Context, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return ctx, nil
	}

	return establish(ctx, &ambient{id: tenantID})
}

// Establish is WithTenant for a resolved tenant record, which stays reachable through
// TenantFromContext for the rest of the request.
func Establish(ctx context.Context, t *types.Tenant) (context.Context, error) {
	if t == nil || t.ID == "" {
		return ctx, nil
	}

	return establish(ctx, &ambient{id: t.ID, tenant: t})
}

func establish(ctx context.Context, a *ambient) (context.Context, error) {
	if current, ok := ctx.Value(tenantKey{}).(*ambient); ok {
		if current.id != a.id {
			return ctx, ErrTenantAlreadyEstablished
		}
		if current.tenant != nil || a.tenant == nil {
			return ctx, nil
		}
	}

	return context.WithValue(ctx, tenantKey{}, a), nil
}

// Run executes fn with tenantID established on the context handed to it.
func Run(ctx context.Context, tenantID string, fn func(context.Context) error) error {
	if strings.TrimSpace(tenantID) == "" {
		return ErrContextNotInitialized
	}

	tctx, err := WithTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	return fn(tctx)
}

// FromContext returns the tenant established on ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	a, ok := ctx.Value(tenantKey{}).(*ambient)
	if !ok || a.id == "" {
		return "", false
	}

	return a.id, true
}

// Require returns the tenant established on ctx or ErrContextNotInitialized.
// Only code that runs behind the resolution middleware should call it.
func Require(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return "", ErrContextNotInitialized
	}

	return id, nil
}

// TenantFromContext returns the tenant record attached by Establish.
func TenantFromContext(ctx context.Context) (*types.Tenant, bool) {
	if ctx == nil {
		return nil, false
	}

	a, ok := ctx.Value(tenantKey{}).(*ambient)
	if !ok || a.tenant == nil {
		return nil, false
	}

	return a.tenant, true
}

// WithoutTenant marks ctx as deliberately unscoped, for maintenance code that must
// reach across tenants while strict scoping is enabled.
func WithoutTenant(ctx context.Context) context.Context {
	return context.WithValue(ctx, unscopedKey{}, true)
}

// IsUnscoped reports whether ctx was marked with WithoutTenant.
func IsUnscoped(ctx context.Context) bool {
	if ctx == nil {
		return false
	}

	v, _ := ctx.Value(unscopedKey{}).(bool)
	return v
}
