// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/canonical/academy-service/internal/cache"
	"github.com/canonical/academy-service/internal/config"
	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/scope"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/pkg/tenant"
)

// cliTenantCache opens the tenant cache configured for serve, tenant updates and
// deletions made from the command line must evict what the server has cached.
func cliTenantCache(ctx context.Context, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (cache.TenantCacheInterface, func(), error) {
	specs := new(config.CacheSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	return tenantCache(ctx, specs, tracer, monitor, logger)
}

// tenantService opens a small pool on the --dsn database and returns the tenant service
// the management commands run against. The returned func releases the pool and the cache.
// Scoping is strict, every member command establishes its tenant explicitly.
func tenantService(ctx context.Context) (*tenant.Service, func(), error) {
	if dsn == "" {
		return nil, nil, errors.New("no database configured, set --dsn or $DSN")
	}

	logger := logging.NewLogger("error")
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("academy-cli", logger)

	tenants, closeCache, err := cliTenantCache(ctx, tracer, monitor, logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := db.NewDBClient(db.Config{DSN: dsn, MaxConns: 2}, tracer, monitor, logger)
	if err != nil {
		closeCache()
		return nil, nil, err
	}

	s := storage.NewStorage(client, scope.NewInterceptor(true, tracer, monitor, logger), tracer, monitor, logger)

	closeFn := func() {
		client.Close()
		closeCache()
	}

	return tenant.NewService(s, tenants, tracer, monitor, logger), closeFn, nil
}
