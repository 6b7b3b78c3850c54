// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/academy-service/internal/cache"
	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/pkg/catalog"
	"github.com/canonical/academy-service/pkg/metrics"
	"github.com/canonical/academy-service/pkg/status"
	"github.com/canonical/academy-service/pkg/tenant"
	"github.com/canonical/academy-service/pkg/webhooks"
)

// Config holds what the router needs beyond the storage layer.
type Config struct {
	// Tenants resolves the tenant of every API request.
	Tenants *tenant.Middleware
	// Authentication attaches the principal, it must not reject anonymous requests.
	Authentication func(http.Handler) http.Handler

	TenantHeader       string
	CORSAllowedOrigins []string

	// RegistrationWebhookToken enables the registration webhook when set.
	RegistrationWebhookToken string
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	c cache.TenantCacheInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins, cfg.TenantHeader),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(map[string]status.Pinger{"postgres": dbClient}, tracer, monitor, logger).RegisterEndpoints(router)

	guard := tenant.NewGuard(s, tracer, monitor, logger)

	router.Group(func(r chi.Router) {
		r.Use(
			cfg.Tenants.HTTPMiddleware,
			cfg.Authentication,
			db.TransactionMiddleware(dbClient, logger),
		)

		tenants := tenant.NewService(s, c, tracer, monitor, logger)

		tenant.NewAPI(tenants, guard, tracer, monitor, logger).RegisterEndpoints(r)

		catalog.NewAPI(
			catalog.NewService(s, tracer, monitor, logger),
			guard,
			tracer, monitor, logger,
		).RegisterEndpoints(r)

		if cfg.RegistrationWebhookToken != "" {
			webhooks.NewAPI(
				webhooks.NewService(tenants, s, tracer, monitor, logger),
				guard,
				cfg.RegistrationWebhookToken,
				tracer, monitor, logger,
			).RegisterEndpoints(r)
		}
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
