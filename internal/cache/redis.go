// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

const (
	idPrefix   = "tenant:id:"
	slugPrefix = "tenant:slug:"
)

const (
	stateUnknown int32 = iota
	stateAvailable
	stateUnavailable
)

var _ TenantCacheInterface = (*TenantCache)(nil)

type TenantCache struct {
	client RedisClientInterface
	ttl    time.Duration
	state  atomic.Int32

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *TenantCache) GetByID(ctx context.Context, id string) (*types.Tenant, bool) {
	ctx, span := c.tracer.Start(ctx, "cache.TenantCache.GetByID", trace.WithAttributes(attribute.String("tenant.id", id)))
	defer span.End()

	return c.get(ctx, idPrefix+id)
}

func (c *TenantCache) GetBySlug(ctx context.Context, slug string) (*types.Tenant, bool) {
	ctx, span := c.tracer.Start(ctx, "cache.TenantCache.GetBySlug", trace.WithAttributes(attribute.String("tenant.slug", slug)))
	defer span.End()

	return c.get(ctx, slugPrefix+strings.ToLower(slug))
}

func (c *TenantCache) get(ctx context.Context, key string) (*types.Tenant, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		c.report(nil)
		return nil, false
	}

	c.report(err)

	if err != nil {
		return nil, false
	}

	tenant := new(types.Tenant)
	if err := json.Unmarshal(raw, tenant); err != nil {
		c.logger.Warnf("dropping malformed cache entry %s: %v", key, err)
		c.client.Del(ctx, key)
		return nil, false
	}

	return tenant, true
}

// Set stores t under both its id and its slug.
func (c *TenantCache) Set(ctx context.Context, t *types.Tenant) {
	ctx, span := c.tracer.Start(ctx, "cache.TenantCache.Set")
	defer span.End()

	if t == nil {
		return
	}

	raw, err := json.Marshal(t)
	if err != nil {
		c.logger.Errorf("failed to encode tenant %s: %v", t.ID, err)
		return
	}

	for _, key := range c.keys(t) {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.report(err)
			return
		}
	}

	c.report(nil)
}

func (c *TenantCache) Invalidate(ctx context.Context, t *types.Tenant) {
	ctx, span := c.tracer.Start(ctx, "cache.TenantCache.Invalidate")
	defer span.End()

	if t == nil {
		return
	}

	c.report(c.client.Del(ctx, c.keys(t)...).Err())
}

func (c *TenantCache) keys(t *types.Tenant) []string {
	keys := make([]string, 0, 2)

	if t.ID != "" {
		keys = append(keys, idPrefix+t.ID)
	}

	if t.Slug != "" {
		keys = append(keys, slugPrefix+strings.ToLower(t.Slug))
	}

	return keys
}

// report keeps the redis availability gauge in line with the outcome of the last
// command, the gauge is only written when the state flips.
func (c *TenantCache) report(err error) {
	state, value := stateAvailable, 1.0

	if err != nil {
		c.logger.Warnf("tenant cache unavailable: %v", err)
		state, value = stateUnavailable, 0
	}

	if c.state.Swap(state) == state {
		return
	}

	c.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, value)
}

// NewTenantCache returns a redis backed tenant cache, entries expire after ttl.
func NewTenantCache(client RedisClientInterface, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *TenantCache {
	c := new(TenantCache)

	c.client = client
	c.ttl = ttl

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
