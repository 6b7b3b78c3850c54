// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
	"github.com/canonical/academy-service/pkg/authentication"
)

func newTestGuard(m MembershipReaderInterface) *Guard {
	logger := logging.NewNoopLogger()
	return NewGuard(m, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func requestContext(t *testing.T, tenantID string, principal *types.Principal) context.Context {
	t.Helper()

	ctx := context.Background()

	if tenantID != "" {
		var err error
		if ctx, err = tenancy.WithTenant(ctx, tenantID); err != nil {
			t.Fatalf("WithTenant() error = %v", err)
		}
	}

	if principal != nil {
		ctx = authentication.WithPrincipal(ctx, principal)
	}

	return ctx
}

func TestGuardRequireMember(t *testing.T) {
	alice := &types.Principal{ID: "alice", Email: "alice@example.com"}
	membership := &types.Membership{ID: "m-1", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleStudent}

	tests := []struct {
		name       string
		tenantID   string
		principal  *types.Principal
		setupMocks func(*MockMembershipReaderInterface)
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "no tenant",
			principal:  alice,
			setupMocks: func(m *MockMembershipReaderInterface) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no principal",
			tenantID:   tenantUUID,
			setupMocks: func(m *MockMembershipReaderInterface) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "not a member",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:      "membership lookup failure",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:      "member",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(membership, nil)
			},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMemberships := NewMockMembershipReaderInterface(ctrl)
			tt.setupMocks(mockMemberships)

			var attached *types.Membership
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				attached, _ = tenancy.MembershipFromContext(r.Context())
			})

			r := httptest.NewRequest(http.MethodGet, "/api/v0/tenant/me", nil)
			r = r.WithContext(requestContext(t, tt.tenantID, tt.principal))
			w := httptest.NewRecorder()

			newTestGuard(mockMemberships).RequireMember()(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			if called != tt.wantCalled {
				t.Fatalf("next called = %v, want %v", called, tt.wantCalled)
			}

			if called && attached != membership {
				t.Errorf("attached membership = %v, want %v", attached, membership)
			}
		})
	}
}

func TestGuardPublic(t *testing.T) {
	alice := &types.Principal{ID: "alice"}
	membership := &types.Membership{ID: "m-1", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleStudent}

	tests := []struct {
		name           string
		tenantID       string
		principal      *types.Principal
		setupMocks     func(*MockMembershipReaderInterface)
		wantMembership *types.Membership
	}{
		{
			name:       "anonymous without tenant",
			setupMocks: func(m *MockMembershipReaderInterface) {},
		},
		{
			name:       "anonymous with tenant",
			tenantID:   tenantUUID,
			setupMocks: func(m *MockMembershipReaderInterface) {},
		},
		{
			name:      "outsider still gets through",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)
			},
		},
		{
			name:      "lookup failure does not reject",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, errors.New("boom"))
			},
		},
		{
			name:      "member gets enriched",
			tenantID:  tenantUUID,
			principal: alice,
			setupMocks: func(m *MockMembershipReaderInterface) {
				m.EXPECT().GetMembership(gomock.Any(), "alice").Return(membership, nil)
			},
			wantMembership: membership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMemberships := NewMockMembershipReaderInterface(ctrl)
			tt.setupMocks(mockMemberships)

			var attached *types.Membership
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attached, _ = tenancy.MembershipFromContext(r.Context())
			})

			r := httptest.NewRequest(http.MethodGet, "/api/v0/courses", nil)
			r = r.WithContext(requestContext(t, tt.tenantID, tt.principal))
			w := httptest.NewRecorder()

			newTestGuard(mockMemberships).Public()(next).ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}

			if attached != tt.wantMembership {
				t.Errorf("attached membership = %v, want %v", attached, tt.wantMembership)
			}
		})
	}
}

func TestGuardRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		membership *types.Membership
		roles      []types.Role
		wantStatus int
	}{
		{
			name:       "role allowed",
			membership: &types.Membership{TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleInstructor},
			roles:      []types.Role{types.RoleAdmin, types.RoleInstructor},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role not allowed",
			membership: &types.Membership{TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleStudent},
			roles:      []types.Role{types.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing RequireMember is a server error",
			roles:      []types.Role{types.RoleAdmin},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := requestContext(t, tenantUUID, &types.Principal{ID: "alice"})
			if tt.membership != nil {
				ctx = tenancy.WithMembership(ctx, tt.membership)
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			r := httptest.NewRequest(http.MethodPatch, "/api/v0/tenant", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			newTestGuard(NewMockMembershipReaderInterface(ctrl)).RequireRole(tt.roles...)(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestGuardMembershipLookedUpOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	membership := &types.Membership{ID: "m-1", TenantID: tenantUUID, PrincipalID: "alice", Role: types.RoleAdmin}

	mockMemberships := NewMockMembershipReaderInterface(ctrl)
	mockMemberships.EXPECT().GetMembership(gomock.Any(), "alice").Return(membership, nil).Times(1)

	g := newTestGuard(mockMemberships)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	// Public then RequireMember then RequireRole, as nested chi groups would stack them.
	handler := g.Public()(g.RequireMember()(g.RequireRole(types.RoleAdmin)(next)))

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(requestContext(t, tenantUUID, &types.Principal{ID: "alice"}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if !called || w.Code != http.StatusOK {
		t.Errorf("called = %v, status = %d", called, w.Code)
	}
}

func TestGuardMembershipOfOtherTenantIsNotReused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stale := &types.Membership{ID: "m-0", TenantID: "other-tenant", PrincipalID: "alice", Role: types.RoleAdmin}

	mockMemberships := NewMockMembershipReaderInterface(ctrl)
	mockMemberships.EXPECT().GetMembership(gomock.Any(), "alice").Return(nil, storage.ErrNotFound)

	ctx := tenancy.WithMembership(requestContext(t, tenantUUID, &types.Principal{ID: "alice"}), stale)

	_, err := newTestGuard(mockMemberships).Member(ctx)

	if !errors.Is(err, tenancy.ErrNotMember) {
		t.Errorf("Member() error = %v, want %v", err, tenancy.ErrNotMember)
	}
}
