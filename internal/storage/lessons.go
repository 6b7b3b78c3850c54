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

var lessonColumns = []string{"id", "tenant_id", "course_id", "title", "position", "created_at"}

func scanLesson(row scanner) (*types.Lesson, error) {
	l := new(types.Lesson)

	if err := row.Scan(&l.ID, &l.TenantID, &l.CourseID, &l.Title, &l.Position, &l.CreatedAt); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Storage) CreateLesson(ctx context.Context, l *types.Lesson) (*types.Lesson, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateLesson")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	q, err := s.scope.Insert(
		ctx,
		s.db.Statement(ctx),
		scope.Lessons,
		map[string]interface{}{"id": id, "course_id": l.CourseID, "title": l.Title, "position": l.Position},
	)
	if err != nil {
		return nil, err
	}

	created, err := scanLesson(q.Suffix(returning(lessonColumns...)).QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "insert lesson")
	}

	return created, nil
}

func (s *Storage) ListLessons(ctx context.Context, courseID string) ([]*types.Lesson, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListLessons")
	defer span.End()

	q, err := s.scope.Select(
		ctx,
		scope.Lessons,
		s.db.Statement(ctx).
			Select(lessonColumns...).
			From(scope.Lessons.Table()).
			Where(sq.Eq{"course_id": courseID}).
			OrderBy("position", "created_at"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "list lessons")
	}
	defer rows.Close()

	lessons := make([]*types.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lessons, nil
}
