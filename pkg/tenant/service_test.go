// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

type recordingCache struct {
	stubCache

	invalidated []string
}

func (c *recordingCache) Invalidate(_ context.Context, t *types.Tenant) {
	c.invalidated = append(c.invalidated, t.Slug)
}

func newTestService(s StorageInterface, c *recordingCache) *Service {
	logger := logging.NewNoopLogger()
	return NewService(s, c, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func TestServiceCreateTenant(t *testing.T) {
	tests := []struct {
		name       string
		input      *types.Tenant
		setupMocks func(*MockStorageInterface)
		wantSlug   string
		wantErr    error
	}{
		{
			name:  "slug derived from name",
			input: &types.Tenant{Name: "Acme Learning Co."},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Tenant) (*types.Tenant, error) {
						return t, nil
					},
				)
			},
			wantSlug: "acme-learning-co",
		},
		{
			name:  "explicit slug kept",
			input: &types.Tenant{Name: "Acme", Slug: "acme-eu"},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Tenant) (*types.Tenant, error) {
						return t, nil
					},
				)
			},
			wantSlug: "acme-eu",
		},
		{
			name:       "blank name",
			input:      &types.Tenant{Name: "  "},
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:       "invalid slug",
			input:      &types.Tenant{Name: "Acme", Slug: "Not A Slug"},
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:  "duplicate slug",
			input: &types.Tenant{Name: "Acme"},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			wantErr: storage.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			got, err := newTestService(mockStorage, &recordingCache{}).CreateTenant(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateTenant() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateTenant() unexpected error = %v", err)
			}

			if got.Slug != tt.wantSlug {
				t.Errorf("slug = %q, want %q", got.Slug, tt.wantSlug)
			}
		})
	}
}

func TestServiceGetTenantFallsBackToSlug(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	acme := &types.Tenant{ID: tenantUUID, Slug: "acme"}

	mockStorage := NewMockStorageInterface(ctrl)
	gomock.InOrder(
		mockStorage.EXPECT().GetTenantByID(gomock.Any(), "acme").Return(nil, storage.ErrNotFound),
		mockStorage.EXPECT().GetTenantBySlug(gomock.Any(), "acme").Return(acme, nil),
	)

	got, err := newTestService(mockStorage, &recordingCache{}).GetTenant(context.Background(), "acme")
	if err != nil {
		t.Fatalf("GetTenant() error = %v", err)
	}

	if got != acme {
		t.Errorf("GetTenant() = %v, want %v", got, acme)
	}
}

func TestServiceUpdateTenantInvalidatesBothSlugs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantUUID).Return(&types.Tenant{ID: tenantUUID, Slug: "acme"}, nil)
	mockStorage.EXPECT().UpdateTenant(gomock.Any(), gomock.Any(), []string{"slug"}).Return(&types.Tenant{ID: tenantUUID, Slug: "acme-eu"}, nil)

	c := &recordingCache{}

	_, err := newTestService(mockStorage, c).UpdateTenant(context.Background(), &types.Tenant{ID: tenantUUID, Slug: "acme-eu"}, []string{"slug"})
	if err != nil {
		t.Fatalf("UpdateTenant() error = %v", err)
	}

	if len(c.invalidated) != 2 || c.invalidated[0] != "acme" || c.invalidated[1] != "acme-eu" {
		t.Errorf("invalidated = %v, want [acme acme-eu]", c.invalidated)
	}
}

func TestServiceDeleteTenant(t *testing.T) {
	tests := []struct {
		name            string
		setupMocks      func(*MockStorageInterface)
		wantErr         error
		wantInvalidated int
	}{
		{
			name: "deleted",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetTenantByID(gomock.Any(), tenantUUID).Return(&types.Tenant{ID: tenantUUID, Slug: "acme"}, nil)
				s.EXPECT().DeleteTenant(gomock.Any(), tenantUUID).Return(nil)
			},
			wantInvalidated: 1,
		},
		{
			name: "unknown tenant",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetTenantByID(gomock.Any(), tenantUUID).Return(nil, storage.ErrNotFound)
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			c := &recordingCache{}
			err := newTestService(mockStorage, c).DeleteTenant(context.Background(), tenantUUID)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteTenant() error = %v, want %v", err, tt.wantErr)
			}

			if len(c.invalidated) != tt.wantInvalidated {
				t.Errorf("invalidated %d entries, want %d", len(c.invalidated), tt.wantInvalidated)
			}
		})
	}
}

func TestServiceProvisionMember(t *testing.T) {
	bob := &types.Principal{ID: "bob", Email: "bob@example.com"}

	tests := []struct {
		name       string
		principal  *types.Principal
		role       types.Role
		setupMocks func(*MockStorageInterface)
		wantErr    error
	}{
		{
			name:      "provisioned",
			principal: bob,
			role:      types.RoleInstructor,
			setupMocks: func(s *MockStorageInterface) {
				gomock.InOrder(
					s.EXPECT().EnsurePrincipal(gomock.Any(), bob).Return(nil),
					s.EXPECT().AddMember(gomock.Any(), "bob", types.RoleInstructor).Return(&types.Membership{PrincipalID: "bob"}, nil),
				)
			},
		},
		{
			name:       "unknown role",
			principal:  bob,
			role:       types.Role("owner"),
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:       "missing principal",
			principal:  &types.Principal{},
			role:       types.RoleStudent,
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:      "already a member",
			principal: bob,
			role:      types.RoleStudent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().EnsurePrincipal(gomock.Any(), bob).Return(nil)
				s.EXPECT().AddMember(gomock.Any(), "bob", types.RoleStudent).Return(nil, storage.ErrDuplicateKey)
			},
			wantErr: storage.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			_, err := newTestService(mockStorage, &recordingCache{}).ProvisionMember(context.Background(), tt.principal, tt.role)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ProvisionMember() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
