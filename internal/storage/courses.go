// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/scope"
	"github.com/canonical/academy-service/internal/types"
)

var courseColumns = []string{
	"id",
	"tenant_id",
	"slug",
	"title",
	"description",
	"COALESCE(instructor_id::text, '')",
	"published",
	"created_at",
	"updated_at",
}

func scanCourse(row scanner) (*types.Course, error) {
	c := new(types.Course)

	err := row.Scan(&c.ID, &c.TenantID, &c.Slug, &c.Title, &c.Description, &c.InstructorID, &c.Published, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func courseFilter(f types.CourseFilter) sq.Sqlizer {
	switch {
	case f.DraftsOf != "":
		return sq.Or{sq.Eq{"published": true}, sq.Eq{"instructor_id": f.DraftsOf}}
	case f.PublishedOnly:
		return sq.Eq{"published": true}
	}
	return nil
}

func nullable(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

// CreateCourses inserts one or more courses in a single statement, all owned by the
// current tenant.
func (s *Storage) CreateCourses(ctx context.Context, courses ...*types.Course) ([]*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCourses")
	defer span.End()

	rows := make([]map[string]interface{}, 0, len(courses))
	for _, c := range courses {
		id, err := newID()
		if err != nil {
			return nil, err
		}

		rows = append(rows, map[string]interface{}{
			"id":            id,
			"slug":          c.Slug,
			"title":         c.Title,
			"description":   c.Description,
			"instructor_id": nullable(c.InstructorID),
			"published":     c.Published,
		})
	}

	q, err := s.scope.Insert(ctx, s.db.Statement(ctx), scope.Courses, rows...)
	if err != nil {
		return nil, err
	}

	res, err := q.Suffix(returning(courseColumns...)).QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "insert courses")
	}
	defer res.Close()

	created := make([]*types.Course, 0, len(courses))
	for res.Next() {
		c, err := scanCourse(res)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		created = append(created, c)
	}

	if err := res.Err(); err != nil {
		return nil, classify(err, "insert courses")
	}

	return created, nil
}

func (s *Storage) ListCourses(ctx context.Context, f types.CourseFilter, page db.Page) ([]*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCourses")
	defer span.End()

	q := s.db.Statement(ctx).
		Select(courseColumns...).
		From(scope.Courses.Table()).
		OrderBy("created_at DESC", "id").
		Limit(page.Limit()).
		Offset(page.Offset())

	if where := courseFilter(f); where != nil {
		q = q.Where(where)
	}

	q, err := s.scope.Select(ctx, scope.Courses, q)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*types.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return courses, nil
}

func (s *Storage) CountCourses(ctx context.Context, f types.CourseFilter) (uint64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountCourses")
	defer span.End()

	q := s.db.Statement(ctx).
		Select("COUNT(*)").
		From(scope.Courses.Table())

	if where := courseFilter(f); where != nil {
		q = q.Where(where)
	}

	q, err := s.scope.Select(ctx, scope.Courses, q)
	if err != nil {
		return 0, err
	}

	var total uint64
	if err := q.QueryRowContext(ctx).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return total, nil
}

func (s *Storage) GetCourse(ctx context.Context, id string) (*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCourse")
	defer span.End()

	q, err := s.scope.Select(
		ctx,
		scope.Courses,
		s.db.Statement(ctx).
			Select(courseColumns...).
			From(scope.Courses.Table()).
			Where(sq.Eq{"id": id}),
	)
	if err != nil {
		return nil, err
	}

	c, err := scanCourse(q.QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "get course")
	}

	return c, nil
}

// UpdateCourse writes the fields named in paths and returns the stored course.
func (s *Storage) UpdateCourse(ctx context.Context, c *types.Course, paths []string) (*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCourse")
	defer span.End()

	updates := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "slug":
			updates["slug"] = c.Slug
		case "title":
			updates["title"] = c.Title
		case "description":
			updates["description"] = c.Description
		case "published":
			updates["published"] = c.Published
		case "instructor_id":
			updates["instructor_id"] = nullable(c.InstructorID)
		}
	}

	if len(updates) == 0 {
		return s.GetCourse(ctx, c.ID)
	}

	updates["updated_at"] = sq.Expr("NOW()")

	q, err := s.scope.Update(
		ctx,
		scope.Courses,
		s.db.Statement(ctx).
			Update(scope.Courses.Table()).
			SetMap(updates).
			Where(sq.Eq{"id": c.ID}),
	)
	if err != nil {
		return nil, err
	}

	updated, err := scanCourse(q.Suffix(returning(courseColumns...)).QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "update course")
	}

	return updated, nil
}

func (s *Storage) DeleteCourse(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteCourse")
	defer span.End()

	q, err := s.scope.Delete(
		ctx,
		scope.Courses,
		s.db.Statement(ctx).
			Delete(scope.Courses.Table()).
			Where(sq.Eq{"id": id}),
	)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx)
	if err != nil {
		return classify(err, "delete course")
	}

	return rowsAffected(res, "delete course")
}
