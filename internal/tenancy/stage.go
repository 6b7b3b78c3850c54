// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

// Stage is how far a tenant required request got through the access pipeline.
// A request rejected at a stage never moves on.
type Stage int

const (
	StageUnresolved Stage = iota
	StageTenantResolved
	StageAuthenticated
	StageMembershipAttached
	StageRoleAuthorized
)

func (s Stage) String() string {
	switch s {
	case StageUnresolved:
		return "unresolved"
	case StageTenantResolved:
		return "tenant_resolved"
	case StageAuthenticated:
		return "authenticated"
	case StageMembershipAttached:
		return "membership_attached"
	case StageRoleAuthorized:
		return "role_authorized"
	default:
		return "unknown"
	}
}
