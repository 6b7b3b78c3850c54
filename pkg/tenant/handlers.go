// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

type updateTenantRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	LogoURL      *string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor *string `json:"primary_color" validate:"omitempty,hexcolor"`
}

type addMemberRequest struct {
	PrincipalID string     `json:"principal_id" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Role        types.Role `json:"role" validate:"required,oneof=admin instructor student"`
}

type updateMemberRequest struct {
	Role types.Role `json:"role" validate:"required,oneof=admin instructor student"`
}

type meResponse struct {
	Tenant     *types.Tenant     `json:"tenant"`
	Membership *types.Membership `json:"membership"`
}

type API struct {
	service   ServiceInterface
	guard     *Guard
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the tenant routes, each with its tenant declaration.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.With(a.guard.Public()).Get("/api/v0/tenant", a.handleGetTenant)

	mux.Group(func(r chi.Router) {
		r.Use(a.guard.RequireMember())

		r.Get("/api/v0/tenant/me", a.handleMe)

		r.Group(func(r chi.Router) {
			r.Use(a.guard.RequireRole(types.RoleAdmin))

			r.Patch("/api/v0/tenant", a.handleUpdateTenant)
			r.Get("/api/v0/tenant/members", a.handleListMembers)
			r.Post("/api/v0/tenant/members", a.handleAddMember)
			r.Patch("/api/v0/tenant/members/{principalID}", a.handleUpdateMember)
			r.Delete("/api/v0/tenant/members/{principalID}", a.handleRemoveMember)
		})
	})
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body", httptypes.ErrInvalidInput)
	}

	if err := a.validator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", httptypes.ErrInvalidInput, err)
	}

	return nil
}

// handleGetTenant renders the branding of the request tenant. Unscoped requests get
// a 404, like an unknown tenant would.
func (a *API) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	t, ok := tenancy.TenantFromContext(r.Context())
	if !ok {
		httptypes.WriteJSON(w, http.StatusNotFound, "not found", nil)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "ok", t)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	m, err := tenancy.RequireMembership(r.Context())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	t, _ := tenancy.TenantFromContext(r.Context())

	httptypes.WriteJSON(w, http.StatusOK, "ok", meResponse{Tenant: t, Membership: m})
}

func (a *API) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.handleUpdateTenant")
	defer span.End()

	id, err := tenancy.Require(ctx)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	req := new(updateTenantRequest)
	if err := a.decode(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	t := &types.Tenant{ID: id}
	paths := make([]string, 0, 3)

	if req.Name != nil {
		t.Name = *req.Name
		paths = append(paths, "name")
	}
	if req.LogoURL != nil {
		t.LogoURL = *req.LogoURL
		paths = append(paths, "logo_url")
	}
	if req.PrimaryColor != nil {
		t.PrimaryColor = *req.PrimaryColor
		paths = append(paths, "primary_color")
	}

	updated, err := a.service.UpdateTenant(ctx, t, paths)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "tenant updated", updated)
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.service.ListMembers(r.Context())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "ok", members)
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	req := new(addMemberRequest)
	if err := a.decode(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	m, err := a.service.ProvisionMember(r.Context(), &types.Principal{ID: req.PrincipalID, Email: req.Email}, req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, "member added", m)
}

func (a *API) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	req := new(updateMemberRequest)
	if err := a.decode(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	m, err := a.service.UpdateMemberRole(r.Context(), chi.URLParam(r, "principalID"), req.Role)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "member updated", m)
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := a.service.RemoveMember(r.Context(), chi.URLParam(r, "principalID")); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "member removed", nil)
}

func NewAPI(service ServiceInterface, guard *Guard, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.guard = guard
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
