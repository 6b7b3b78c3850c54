// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"net/http"

	"github.com/canonical/academy-service/internal/types"
)

// ProvisionerInterface grants a principal a role in the tenant on the context.
// It is a subset of the tenant service.
type ProvisionerInterface interface {
	ProvisionMember(context.Context, *types.Principal, types.Role) (*types.Membership, error)
}

// MembershipReaderInterface is a subset of the internal/storage interface.
type MembershipReaderInterface interface {
	GetMembership(context.Context, string) (*types.Membership, error)
}

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) (*types.Membership, bool, error)
}

type Guard interface {
	Public() func(http.Handler) http.Handler
}
