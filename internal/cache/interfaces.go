// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/academy-service/internal/types"
)

// TenantCacheInterface caches tenant lookups made during request resolution.
// Failures are never surfaced, a broken cache behaves as a permanent miss.
type TenantCacheInterface interface {
	GetByID(context.Context, string) (*types.Tenant, bool)
	GetBySlug(context.Context, string) (*types.Tenant, bool)
	Set(context.Context, *types.Tenant)
	Invalidate(context.Context, *types.Tenant)
}

// RedisClientInterface is the subset of redis.Cmdable the cache needs.
type RedisClientInterface interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, interface{}, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}
