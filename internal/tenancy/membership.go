// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/academy-service/internal/types"
)

type membershipKey struct{}

// WithMembership attaches the caller's membership in the current tenant.
func WithMembership(ctx context.Context, m *types.Membership) context.Context {
	if m == nil {
		return ctx
	}
	return context.WithValue(ctx, membershipKey{}, m)
}

func MembershipFromContext(ctx context.Context) (*types.Membership, bool) {
	if ctx == nil {
		return nil, false
	}

	m, ok := ctx.Value(membershipKey{}).(*types.Membership)
	return m, ok && m != nil
}

// RequireMembership returns the attached membership or ErrMembershipNotAttached.
func RequireMembership(ctx context.Context) (*types.Membership, error) {
	m, ok := MembershipFromContext(ctx)
	if !ok {
		return nil, ErrMembershipNotAttached
	}
	return m, nil
}
