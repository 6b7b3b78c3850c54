// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/canonical/academy-service/internal/cache"
	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	cache   cache.TenantCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateTenant registers a tenant, deriving its slug from the name when none is given.
func (s *Service) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	if strings.TrimSpace(t.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", httptypes.ErrInvalidInput)
	}

	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}

	if !slug.IsSlug(t.Slug) {
		return nil, fmt.Errorf("%w: %q is not a valid slug", httptypes.ErrInvalidInput, t.Slug)
	}

	created, err := s.storage.CreateTenant(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return created, nil
}

func (s *Service) GetTenant(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	t, err := s.storage.GetTenantByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		t, err = s.storage.GetTenantBySlug(ctx, id)
	}

	return t, err
}

func (s *Service) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

// UpdateTenant writes the fields named in paths. The cached copy is dropped under
// both its old and its new slug.
func (s *Service) UpdateTenant(ctx context.Context, t *types.Tenant, paths []string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTenant")
	defer span.End()

	if t.Slug != "" && !slug.IsSlug(t.Slug) {
		return nil, fmt.Errorf("%w: %q is not a valid slug", httptypes.ErrInvalidInput, t.Slug)
	}

	previous, err := s.storage.GetTenantByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateTenant(ctx, t, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	s.cache.Invalidate(ctx, previous)
	s.cache.Invalidate(ctx, updated)

	return updated, nil
}

func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.DeleteTenant")
	defer span.End()

	t, err := s.storage.GetTenantByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteTenant(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	s.cache.Invalidate(ctx, t)

	return nil
}

// ProvisionMember records the principal and grants it role in the tenant on ctx.
func (s *Service) ProvisionMember(ctx context.Context, p *types.Principal, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ProvisionMember")
	defer span.End()

	if p == nil || p.ID == "" {
		return nil, fmt.Errorf("%w: principal id is required", httptypes.ErrInvalidInput)
	}

	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", httptypes.ErrInvalidInput, role)
	}

	if err := s.storage.EnsurePrincipal(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to record principal: %w", err)
	}

	m, err := s.storage.AddMember(ctx, p.ID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return m, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListMembers")
	defer span.End()

	return s.storage.ListMembers(ctx)
}

func (s *Service) UpdateMemberRole(ctx context.Context, principalID string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateMemberRole")
	defer span.End()

	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", httptypes.ErrInvalidInput, role)
	}

	return s.storage.UpdateMemberRole(ctx, principalID, role)
}

func (s *Service) RemoveMember(ctx context.Context, principalID string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.RemoveMember")
	defer span.End()

	return s.storage.RemoveMember(ctx, principalID)
}

func NewService(s StorageInterface, c cache.TenantCacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	svc := new(Service)

	svc.storage = s
	svc.cache = c

	svc.tracer = tracer
	svc.monitor = monitor
	svc.logger = logger

	return svc
}
