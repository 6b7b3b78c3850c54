// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	TracingSampleRatio float64 `envconfig:"tracing_sample_ratio" default:"1"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int `envconfig:"port" default:"8080"`
	GRPCPort int `envconfig:"grpc_port" default:"50051"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// TenantHeader carries an explicit tenant id or slug, it takes precedence over the host subdomain
	TenantHeader string `envconfig:"tenant_header" default:"X-Tenant-Id"`
	// TenantStrictScoping makes tenant scoped queries fail when no tenant is in the request context
	TenantStrictScoping bool `envconfig:"tenant_strict_scoping" default:"false"`

	CacheSpec

	AuthenticationEnabled       bool     `envconfig:"authentication_enabled" default:"true"`
	AuthenticationIssuer        string   `envconfig:"authentication_issuer"`
	AuthenticationJWKSURL       string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubs   []string `envconfig:"authentication_allowed_subjects"`
	AuthenticationRequiredScope string   `envconfig:"authentication_required_scope"`

	// RegistrationWebhookToken is shared with the identity provider, the webhook is off when empty
	RegistrationWebhookToken string `envconfig:"registration_webhook_token"`
}

// CacheSpec configures the tenant cache. The management commands read it on their
// own so that their writes invalidate the cache the server reads.
type CacheSpec struct {
	TenantCacheEnabled bool          `envconfig:"tenant_cache_enabled" default:"false"`
	TenantCacheTTL     time.Duration `envconfig:"tenant_cache_ttl" default:"1m"`
	RedisURL           string        `envconfig:"redis_url" default:"redis://localhost:6379/0"`
}
