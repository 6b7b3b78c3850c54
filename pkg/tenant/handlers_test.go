// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
	"github.com/canonical/academy-service/pkg/authentication"
)

// withCaller stands in for the resolution and authentication middlewares.
func withCaller(tenant *types.Tenant, principal *types.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if tenant != nil {
				ctx, _ = tenancy.Establish(ctx, tenant)
			}
			if principal != nil {
				ctx = authentication.WithPrincipal(ctx, principal)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(svc ServiceInterface, memberships MembershipReaderInterface, tenant *types.Tenant, principal *types.Principal) http.Handler {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	mux := chi.NewRouter()
	mux.Use(withCaller(tenant, principal))

	NewAPI(svc, NewGuard(memberships, tracer, monitor, logger), tracer, monitor, logger).RegisterEndpoints(mux)

	return mux
}

func TestAPI(t *testing.T) {
	acme := &types.Tenant{ID: tenantUUID, Slug: "acme", Name: "Acme", Enabled: true}
	alice := &types.Principal{ID: "alice"}
	admin := &types.Membership{ID: "m-1", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleAdmin}
	student := &types.Membership{ID: "m-2", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleStudent}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		tenant     *types.Tenant
		principal  *types.Principal
		setupMocks func(*MockServiceInterface, *MockMembershipReaderInterface)
		wantStatus int
	}{
		{
			name:       "branding without tenant",
			method:     http.MethodGet,
			path:       "/api/v0/tenant",
			setupMocks: func(*MockServiceInterface, *MockMembershipReaderInterface) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "branding for anonymous caller",
			method:     http.MethodGet,
			path:       "/api/v0/tenant",
			tenant:     acme,
			setupMocks: func(*MockServiceInterface, *MockMembershipReaderInterface) {},
			wantStatus: http.StatusOK,
		},
		{
			name:      "me for a member",
			method:    http.MethodGet,
			path:      "/api/v0/tenant/me",
			tenant:    acme,
			principal: alice,
			setupMocks: func(_ *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(student, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "me for an outsider",
			method:    http.MethodGet,
			path:      "/api/v0/tenant/me",
			tenant:    acme,
			principal: alice,
			setupMocks: func(_ *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "me without tenant",
			method:     http.MethodGet,
			path:       "/api/v0/tenant/me",
			principal:  alice,
			setupMocks: func(*MockServiceInterface, *MockMembershipReaderInterface) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:      "student cannot update branding",
			method:    http.MethodPatch,
			path:      "/api/v0/tenant",
			body:      `{"name":"Acme Academy"}`,
			tenant:    acme,
			principal: alice,
			setupMocks: func(_ *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(student, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:      "admin updates branding",
			method:    http.MethodPatch,
			path:      "/api/v0/tenant",
			body:      `{"name":"Acme Academy","primary_color":"#ff6600"}`,
			tenant:    acme,
			principal: alice,
			setupMocks: func(s *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
				s.EXPECT().UpdateTenant(gomock.Any(), &types.Tenant{ID: tenantUUID, Name: "Acme Academy", PrimaryColor: "#ff6600"}, []string{"name", "primary_color"}).
					Return(acme, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "bad color",
			method:    http.MethodPatch,
			path:      "/api/v0/tenant",
			body:      `{"primary_color":"orange"}`,
			tenant:    acme,
			principal: alice,
			setupMocks: func(_ *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "admin adds a member",
			method:    http.MethodPost,
			path:      "/api/v0/tenant/members",
			body:      `{"principal_id":"bob","email":"bob@example.com","role":"instructor"}`,
			tenant:    acme,
			principal: alice,
			setupMocks: func(s *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
				s.EXPECT().ProvisionMember(gomock.Any(), &types.Principal{ID: "bob", Email: "bob@example.com"}, types.RoleInstructor).
					Return(&types.Membership{PrincipalID: "bob", Role: types.RoleInstructor}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:      "unknown role",
			method:    http.MethodPost,
			path:      "/api/v0/tenant/members",
			body:      `{"principal_id":"bob","role":"owner"}`,
			tenant:    acme,
			principal: alice,
			setupMocks: func(_ *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:      "admin removes a member",
			method:    http.MethodDelete,
			path:      "/api/v0/tenant/members/bob",
			tenant:    acme,
			principal: alice,
			setupMocks: func(s *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
				s.EXPECT().RemoveMember(gomock.Any(), "bob").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:      "removing an unknown member",
			method:    http.MethodDelete,
			path:      "/api/v0/tenant/members/carol",
			tenant:    acme,
			principal: alice,
			setupMocks: func(s *MockServiceInterface, m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(admin, nil)
				s.EXPECT().RemoveMember(gomock.Any(), "carol").Return(storage.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			mockMemberships := NewMockMembershipReaderInterface(ctrl)
			tt.setupMocks(mockSvc, mockMemberships)

			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			newTestRouter(mockSvc, mockMemberships, tt.tenant, tt.principal).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}

			resp := new(httptypes.Response)
			if err := json.NewDecoder(w.Body).Decode(resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if resp.Status != tt.wantStatus {
				t.Errorf("envelope status = %d, want %d", resp.Status, tt.wantStatus)
			}
		})
	}
}
