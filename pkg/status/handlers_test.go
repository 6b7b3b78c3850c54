// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/version"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(deps map[string]Pinger) http.Handler {
	logger := logging.NewNoopLogger()

	mux := chi.NewRouter()
	NewAPI(deps, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("academy", logger), logger).RegisterEndpoints(mux)

	return mux
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		ping       error
		wantStatus int
		wantCheck  string
	}{
		{name: "database up", wantStatus: http.StatusOK, wantCheck: "ok"},
		{name: "database down", ping: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantCheck: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := map[string]Pinger{"postgres": pingFunc(func(context.Context) error { return tt.ping })}

			w := httptest.NewRecorder()
			newTestRouter(deps).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp struct {
				Data Status `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if got := resp.Data.Checks["postgres"]; got != tt.wantCheck {
				t.Errorf("postgres check = %q, want %q", got, tt.wantCheck)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := new(httptypes.Response)
	if err := json.NewDecoder(w.Body).Decode(resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	info, ok := resp.Data.(map[string]interface{})
	if !ok || info["version"] != version.Version || info["name"] != "academy" {
		t.Errorf("data = %v", resp.Data)
	}
}
