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

var enrollmentColumns = []string{"id", "tenant_id", "course_id", "membership_id", "created_at"}

func scanEnrollment(row scanner) (*types.Enrollment, error) {
	e := new(types.Enrollment)

	if err := row.Scan(&e.ID, &e.TenantID, &e.CourseID, &e.MembershipID, &e.CreatedAt); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Storage) CreateEnrollment(ctx context.Context, courseID, membershipID string) (*types.Enrollment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateEnrollment")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	q, err := s.scope.Insert(
		ctx,
		s.db.Statement(ctx),
		scope.Enrollments,
		map[string]interface{}{"id": id, "course_id": courseID, "membership_id": membershipID},
	)
	if err != nil {
		return nil, err
	}

	created, err := scanEnrollment(q.Suffix(returning(enrollmentColumns...)).QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "insert enrollment")
	}

	return created, nil
}

// ListEnrollments returns the enrollments of a membership in the current tenant.
func (s *Storage) ListEnrollments(ctx context.Context, membershipID string) ([]*types.Enrollment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListEnrollments")
	defer span.End()

	q, err := s.scope.Select(
		ctx,
		scope.Enrollments,
		s.db.Statement(ctx).
			Select(enrollmentColumns...).
			From(scope.Enrollments.Table()).
			Where(sq.Eq{"membership_id": membershipID}).
			OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "list enrollments")
	}
	defer rows.Close()

	enrollments := make([]*types.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return enrollments, nil
}
