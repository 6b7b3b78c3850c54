// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/mock/gomock"

	"github.com/canonical/academy-service/internal/cache"
	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/pkg/tenant"
	"github.com/canonical/academy-service/pkg/webhooks"
)

type fakeDB struct{}

func (fakeDB) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func (fakeDB) BeginTx(ctx context.Context) (context.Context, db.TxInterface, error) {
	return ctx, nil, nil
}

func (fakeDB) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (fakeDB) Ping(context.Context) error { return nil }

func (fakeDB) Close() {}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		header     map[string]string
		wantStatus int
	}{
		{name: "status", method: http.MethodGet, path: "/api/v0/status", wantStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/api/v0/version", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/api/v0/metrics", wantStatus: http.StatusOK},
		{name: "branding without tenant", method: http.MethodGet, path: "/api/v0/tenant", wantStatus: http.StatusNotFound},
		{name: "members without tenant", method: http.MethodGet, path: "/api/v0/tenant/members", wantStatus: http.StatusForbidden},
		{name: "enrollments without tenant", method: http.MethodGet, path: "/api/v0/enrollments", wantStatus: http.StatusForbidden},
		{name: "webhook without token", method: http.MethodPost, path: "/api/v0/webhooks/registration", body: `{"id":"dave"}`, wantStatus: http.StatusUnauthorized},
		{
			name:       "webhook without tenant",
			method:     http.MethodPost,
			path:       "/api/v0/webhooks/registration",
			body:       `{"id":"dave"}`,
			header:     map[string]string{webhooks.TokenHeader: "s3cret"},
			wantStatus: http.StatusForbidden,
		},
		{name: "unknown route", method: http.MethodGet, path: "/api/v0/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			logger := logging.NewNoopLogger()
			tracer := tracing.NewNoopTracer()
			monitor := monitoring.NewNoopMonitor("test", logger)

			cfg := Config{
				Tenants:            tenant.NewMiddleware(tenant.NewMockLookupInterface(ctrl), "X-Tenant-Id", tracer, monitor, logger),
				Authentication:     func(next http.Handler) http.Handler { return next },
				TenantHeader:       "X-Tenant-Id",
				CORSAllowedOrigins: []string{"*"},

				RegistrationWebhookToken: "s3cret",
			}

			router := NewRouter(cfg, nil, cache.NewNoopTenantCache(), fakeDB{}, tracer, monitor, logger)

			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			r.Host = "localhost:8080"
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}
