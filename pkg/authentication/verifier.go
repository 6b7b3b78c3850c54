// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

// claims are the token fields the service reads, scopes may come space separated
// in scope or as a list in scp depending on the issuer.
type claims struct {
	Subject string   `json:"sub"`
	Email   string   `json:"email"`
	Scope   string   `json:"scope"`
	Scopes  []string `json:"scp"`
}

func (c claims) hasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope) || slices.Contains(c.Scopes, scope)
}

type JWTVerifier struct {
	verifier        *oidc.IDTokenVerifier
	allowedSubjects []string
	requiredScope   string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// VerifyToken checks the signature and issuer of rawToken, then the access policy:
// the subject must be allow-listed or the token must carry the required scope.
// Without either criterion configured every token is accepted.
func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var c claims
	if err := token.Claims(&c); err != nil {
		v.logger.Debugf("failed to extract claims: %v", err)
		return nil, err
	}

	principal := &types.Principal{ID: c.Subject, Email: c.Email}

	if len(v.allowedSubjects) == 0 && v.requiredScope == "" {
		return principal, nil
	}

	if slices.Contains(v.allowedSubjects, c.Subject) {
		return principal, nil
	}

	if v.requiredScope != "" && c.hasScope(v.requiredScope) {
		return principal, nil
	}

	v.logger.Security().AuthzFailure(c.Subject, "api_access")
	return nil, fmt.Errorf("unauthorized: missing required scope or subject not allowed")
}

func NewJWTVerifier(
	provider ProviderInterface,
	allowedSubjects []string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return NewJWTVerifierDirect(provider.Verifier(verifierConfig()), allowedSubjects, requiredScope, tracer, monitor, logger)
}

func NewJWTVerifierDirect(
	verifier *oidc.IDTokenVerifier,
	allowedSubjects []string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	v := new(JWTVerifier)

	v.verifier = verifier
	v.allowedSubjects = allowedSubjects
	v.requiredScope = requiredScope

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
