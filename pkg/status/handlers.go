// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/version"
)

const pingTimeout = 2 * time.Second

// Pinger is anything the service depends on to serve traffic.
type Pinger interface {
	Ping(context.Context) error
}

type Status struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	BuildID string            `json:"buildId,omitempty"`
}

type BuildInfo struct {
	Version string `json:"version"`
	Name    string `json:"name"`
}

type API struct {
	dependencies map[string]Pinger

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{Status: "ok", Checks: make(map[string]string, len(a.dependencies))}
	code := http.StatusOK

	for name, dep := range a.dependencies {
		if err := dep.Ping(ctx); err != nil {
			a.logger.Warnf("%s is not available: %v", name, err)
			status.Checks[name] = "unavailable"
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}

	status.BuildID = version.Revision()

	httptypes.WriteJSON(w, code, status.Status, status)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, "ok", BuildInfo{Version: version.Version, Name: a.monitor.GetService()})
}

// NewAPI returns the status endpoints, dependencies are pinged by name on every status call.
func NewAPI(dependencies map[string]Pinger, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.dependencies = dependencies

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
