// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/academy-service/internal/types"
)

type ServiceInterface interface {
	CreateTenant(context.Context, *types.Tenant) (*types.Tenant, error)
	GetTenant(context.Context, string) (*types.Tenant, error)
	ListTenants(context.Context) ([]*types.Tenant, error)
	UpdateTenant(context.Context, *types.Tenant, []string) (*types.Tenant, error)
	DeleteTenant(context.Context, string) error

	ProvisionMember(context.Context, *types.Principal, types.Role) (*types.Membership, error)
	ListMembers(context.Context) ([]*types.Membership, error)
	UpdateMemberRole(context.Context, string, types.Role) (*types.Membership, error)
	RemoveMember(context.Context, string) error
}

// LookupInterface finds a tenant by the candidate a request carried. A candidate that
// matches no enabled tenant yields nil without error.
type LookupInterface interface {
	Lookup(context.Context, string) (*types.Tenant, error)
}

// MembershipReaderInterface reads the membership of a principal in the tenant on the context.
type MembershipReaderInterface interface {
	GetMembership(context.Context, string) (*types.Membership, error)
}

type StorageInterface interface {
	CreateTenant(context.Context, *types.Tenant) (*types.Tenant, error)
	GetTenantByID(context.Context, string) (*types.Tenant, error)
	GetTenantBySlug(context.Context, string) (*types.Tenant, error)
	ListTenants(context.Context) ([]*types.Tenant, error)
	UpdateTenant(context.Context, *types.Tenant, []string) (*types.Tenant, error)
	DeleteTenant(context.Context, string) error

	EnsurePrincipal(context.Context, *types.Principal) error
	AddMember(context.Context, string, types.Role) (*types.Membership, error)
	GetMembership(context.Context, string) (*types.Membership, error)
	ListMembers(context.Context) ([]*types.Membership, error)
	UpdateMemberRole(context.Context, string, types.Role) (*types.Membership, error)
	RemoveMember(context.Context, string) error
}
