// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
)

// TokenHeader carries the secret shared with the identity provider.
const TokenHeader = "X-Webhook-Token"

type API struct {
	service   ServiceInterface
	guard     Guard
	token     []byte
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.With(a.guard.Public()).Post("/api/v0/webhooks/registration", a.handleRegistration)
}

func (a *API) authorized(r *http.Request) bool {
	return subtle.ConstantTimeCompare([]byte(r.Header.Get(TokenHeader)), a.token) == 1
}

func (a *API) handleRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "webhooks.API.handleRegistration")
	defer span.End()

	if !a.authorized(r) {
		a.logger.Security().AuthnFailure("invalid registration webhook token")
		httptypes.WriteError(w, httptypes.ErrUnauthorized, a.logger)
		return
	}

	identity := new(Identity)
	if err := json.NewDecoder(r.Body).Decode(identity); err != nil {
		httptypes.WriteError(w, fmt.Errorf("%w: malformed body", httptypes.ErrInvalidInput), a.logger)
		return
	}

	if err := a.validator.Struct(identity); err != nil {
		httptypes.WriteError(w, fmt.Errorf("%w: %v", httptypes.ErrInvalidInput, err), a.logger)
		return
	}

	m, created, err := a.service.HandleRegistration(ctx, identity.ID, identity.Traits.Email)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	if !created {
		httptypes.WriteJSON(w, http.StatusOK, "already a member", m)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, "member provisioned", m)
}

// NewAPI serves the registration webhook, requests must present token in TokenHeader.
func NewAPI(service ServiceInterface, guard Guard, token string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.guard = guard
	a.token = []byte(token)
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
