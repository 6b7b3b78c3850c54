// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"

	"github.com/canonical/academy-service/internal/types"
)

var _ TenantCacheInterface = (*NoopTenantCache)(nil)

// NoopTenantCache never holds anything, every lookup goes to storage.
type NoopTenantCache struct{}

func (c *NoopTenantCache) GetByID(context.Context, string) (*types.Tenant, bool) {
	return nil, false
}

func (c *NoopTenantCache) GetBySlug(context.Context, string) (*types.Tenant, bool) {
	return nil, false
}

func (c *NoopTenantCache) Set(context.Context, *types.Tenant) {}

func (c *NoopTenantCache) Invalidate(context.Context, *types.Tenant) {}

func NewNoopTenantCache() *NoopTenantCache {
	return new(NoopTenantCache)
}
