// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// Config describes the token issuer and the access policy applied to its tokens.
type Config struct {
	Issuer          string
	JWKSURL         string
	AllowedSubjects []string
	RequiredScope   string
}

// verifierConfig skips the audience check, tokens are minted for the SPA client and
// not for this service.
func verifierConfig() *oidc.Config {
	return &oidc.Config{SkipClientIDCheck: true}
}

// NewVerifier builds a token verifier for cfg.Issuer, keys come from cfg.JWKSURL when
// set and from OIDC discovery otherwise.
func NewVerifier(ctx context.Context, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*JWTVerifier, error) {
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	if cfg.JWKSURL != "" {
		logger.Infof("using JWKS %s for issuer %s", cfg.JWKSURL, cfg.Issuer)

		verifier := oidc.NewVerifier(cfg.Issuer, oidc.NewRemoteKeySet(ctx, cfg.JWKSURL), verifierConfig())
		return NewJWTVerifierDirect(verifier, cfg.AllowedSubjects, cfg.RequiredScope, tracer, monitor, logger), nil
	}

	logger.Infof("using OIDC discovery for issuer %s", cfg.Issuer)

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		monitor.SetDependencyAvailability(map[string]string{"component": "oidc"}, 0)
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	monitor.SetDependencyAvailability(map[string]string{"component": "oidc"}, 1)

	return NewJWTVerifier(provider, cfg.AllowedSubjects, cfg.RequiredScope, tracer, monitor, logger), nil
}
