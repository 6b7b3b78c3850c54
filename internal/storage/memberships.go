// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/academy-service/internal/scope"
	"github.com/canonical/academy-service/internal/types"
)

var membershipColumns = []string{
	"memberships.id",
	"memberships.tenant_id",
	"memberships.principal_id",
	"principals.email",
	"memberships.role",
	"memberships.created_at",
}

func scanMembership(row scanner) (*types.Membership, error) {
	m := new(types.Membership)

	if err := row.Scan(&m.ID, &m.TenantID, &m.PrincipalID, &m.Email, &m.Role, &m.CreatedAt); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Storage) selectMemberships(ctx context.Context) (sq.SelectBuilder, error) {
	return s.scope.Select(
		ctx,
		scope.Memberships,
		s.db.Statement(ctx).
			Select(membershipColumns...).
			From(scope.Memberships.Table()).
			Join("principals ON principals.id = memberships.principal_id"),
	)
}

// EnsurePrincipal records a principal the first time it is seen. Principals are shared
// by every tenant, an existing row is left untouched whoever provisions it again.
func (s *Storage) EnsurePrincipal(ctx context.Context, p *types.Principal) error {
	ctx, span := s.tracer.Start(ctx, "storage.EnsurePrincipal")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("principals").
		Columns("id", "email").
		Values(p.ID, p.Email).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ExecContext(ctx)

	return classify(err, "ensure principal")
}

// AddMember grants principalID a role in the current tenant. The principal must exist.
func (s *Storage) AddMember(ctx context.Context, principalID string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	q, err := s.scope.Insert(
		ctx,
		s.db.Statement(ctx),
		scope.Memberships,
		map[string]interface{}{"id": id, "principal_id": principalID, "role": string(role)},
	)
	if err != nil {
		return nil, err
	}

	if _, err := q.ExecContext(ctx); err != nil {
		return nil, classify(err, "add member")
	}

	return s.GetMembership(ctx, principalID)
}

// GetMembership returns the membership of principalID in the current tenant.
func (s *Storage) GetMembership(ctx context.Context, principalID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	q, err := s.selectMemberships(ctx)
	if err != nil {
		return nil, err
	}

	m, err := scanMembership(q.Where(sq.Eq{"memberships.principal_id": principalID}).QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "get membership")
	}

	return m, nil
}

func (s *Storage) ListMembers(ctx context.Context) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembers")
	defer span.End()

	q, err := s.selectMemberships(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.OrderBy("memberships.created_at").QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, principalID string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	q, err := s.scope.Update(
		ctx,
		scope.Memberships,
		s.db.Statement(ctx).
			Update(scope.Memberships.Table()).
			Set("role", string(role)).
			Where(sq.Eq{"principal_id": principalID}),
	)
	if err != nil {
		return nil, err
	}

	res, err := q.ExecContext(ctx)
	if err != nil {
		return nil, classify(err, "update member")
	}

	if err := rowsAffected(res, "update member"); err != nil {
		return nil, err
	}

	return s.GetMembership(ctx, principalID)
}

func (s *Storage) RemoveMember(ctx context.Context, principalID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	q, err := s.scope.Delete(
		ctx,
		scope.Memberships,
		s.db.Statement(ctx).
			Delete(scope.Memberships.Table()).
			Where(sq.Eq{"principal_id": principalID}),
	)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx)
	if err != nil {
		return classify(err, "remove member")
	}

	return rowsAffected(res, "remove member")
}
