// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/academy-service/internal/types"
)

var tenantColumns = []string{"id", "slug", "name", "logo_url", "primary_color", "enabled", "created_at"}

func scanTenant(row scanner) (*types.Tenant, error) {
	t := new(types.Tenant)

	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.LogoURL, &t.PrimaryColor, &t.Enabled, &t.CreatedAt); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "slug", "name", "logo_url", "primary_color", "enabled").
		Values(id, strings.ToLower(t.Slug), t.Name, t.LogoURL, t.PrimaryColor, t.Enabled).
		Suffix(returning(tenantColumns...)).
		QueryRowContext(ctx)

	created, err := scanTenant(row)
	if err != nil {
		return nil, classify(err, "insert tenant")
	}

	return created, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantBySlug")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"slug": strings.ToLower(slug)})
}

func (s *Storage) getTenant(ctx context.Context, where sq.Eq) (*types.Tenant, error) {
	row := s.db.Statement(ctx).
		Select(tenantColumns...).
		From("tenants").
		Where(where).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		return nil, classify(err, "get tenant")
	}

	return t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns...).
		From("tenants").
		OrderBy("slug").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*types.Tenant, 0)
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// UpdateTenant writes the fields named in paths and returns the stored tenant.
// Unknown paths are ignored, an empty update only reads the tenant back.
func (s *Storage) UpdateTenant(ctx context.Context, t *types.Tenant, paths []string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenant")
	defer span.End()

	updates := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updates["name"] = t.Name
		case "slug":
			updates["slug"] = strings.ToLower(t.Slug)
		case "logo_url":
			updates["logo_url"] = t.LogoURL
		case "primary_color":
			updates["primary_color"] = t.PrimaryColor
		case "enabled":
			updates["enabled"] = t.Enabled
		}
	}

	if len(updates) == 0 {
		return s.GetTenantByID(ctx, t.ID)
	}

	row := s.db.Statement(ctx).
		Update("tenants").
		SetMap(updates).
		Where(sq.Eq{"id": t.ID}).
		Suffix(returning(tenantColumns...)).
		QueryRowContext(ctx)

	updated, err := scanTenant(row)
	if err != nil {
		return nil, classify(err, "update tenant")
	}

	return updated, nil
}

func (s *Storage) DeleteTenant(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTenant")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tenants").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "delete tenant")
	}

	return rowsAffected(res, "delete tenant")
}
