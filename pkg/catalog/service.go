// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"github.com/canonical/academy-service/internal/db"
	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// Service is the course catalog of the tenant on the context. Draft courses are only
// visible to admins and to the instructor who owns them.
type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func visibility(ctx context.Context) types.CourseFilter {
	m, ok := tenancy.MembershipFromContext(ctx)
	if !ok {
		return types.CourseFilter{PublishedOnly: true}
	}

	switch m.Role {
	case types.RoleAdmin:
		return types.CourseFilter{}
	case types.RoleInstructor:
		return types.CourseFilter{DraftsOf: m.ID}
	default:
		return types.CourseFilter{PublishedOnly: true}
	}
}

func visible(ctx context.Context, c *types.Course) bool {
	if c.Published {
		return true
	}

	m, ok := tenancy.MembershipFromContext(ctx)
	if !ok {
		return false
	}

	return m.Role == types.RoleAdmin || (m.Role == types.RoleInstructor && c.InstructorID == m.ID)
}

// owned fails unless the attached membership may edit c.
func owned(ctx context.Context, c *types.Course) error {
	m, err := tenancy.RequireMembership(ctx)
	if err != nil {
		return err
	}

	if m.Role == types.RoleAdmin || c.InstructorID == m.ID {
		return nil
	}

	return tenancy.ErrRoleNotPermitted
}

// ListCourses returns one page of the courses visible to the caller along with the
// total number of them.
func (s *Service) ListCourses(ctx context.Context, page db.Page) ([]*types.Course, uint64, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.ListCourses")
	defer span.End()

	var (
		courses []*types.Course
		total   uint64
		filter  = visibility(ctx)
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		courses, err = s.storage.ListCourses(gctx, filter, page)
		return err
	})

	g.Go(func() (err error) {
		total, err = s.storage.CountCourses(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

// GetCourse reads a course, a draft the caller may not see reads as not found.
func (s *Service) GetCourse(ctx context.Context, id string) (*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.GetCourse")
	defer span.End()

	c, err := s.storage.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if !visible(ctx, c) {
		return nil, storage.ErrNotFound
	}

	return c, nil
}

// CreateCourses creates one or more courses owned by the caller.
func (s *Service) CreateCourses(ctx context.Context, courses ...*types.Course) ([]*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.CreateCourses")
	defer span.End()

	m, err := tenancy.RequireMembership(ctx)
	if err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: no course given", httptypes.ErrInvalidInput)
	}

	for _, c := range courses {
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", httptypes.ErrInvalidInput)
		}

		if c.Slug == "" {
			c.Slug = slug.Make(c.Title)
		}

		if !slug.IsSlug(c.Slug) {
			return nil, fmt.Errorf("%w: %q is not a valid slug", httptypes.ErrInvalidInput, c.Slug)
		}

		c.InstructorID = m.ID
	}

	created, err := s.storage.CreateCourses(ctx, courses...)
	if err != nil {
		return nil, fmt.Errorf("failed to create courses: %w", err)
	}

	return created, nil
}

// UpdateCourse writes the fields named in paths. Instructors can only edit their own courses.
func (s *Service) UpdateCourse(ctx context.Context, c *types.Course, paths []string) (*types.Course, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.UpdateCourse")
	defer span.End()

	current, err := s.GetCourse(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	if err := owned(ctx, current); err != nil {
		return nil, err
	}

	if c.Slug != "" && !slug.IsSlug(c.Slug) {
		return nil, fmt.Errorf("%w: %q is not a valid slug", httptypes.ErrInvalidInput, c.Slug)
	}

	updated, err := s.storage.UpdateCourse(ctx, c, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return updated, nil
}

func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.DeleteCourse")
	defer span.End()

	return s.storage.DeleteCourse(ctx, id)
}

func (s *Service) ListLessons(ctx context.Context, courseID string) ([]*types.Lesson, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.ListLessons")
	defer span.End()

	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	return s.storage.ListLessons(ctx, courseID)
}

// CreateLesson appends a lesson to a course of the current tenant. The course is read
// through the scoped storage first, a course of another tenant reads as not found.
func (s *Service) CreateLesson(ctx context.Context, l *types.Lesson) (*types.Lesson, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.CreateLesson")
	defer span.End()

	c, err := s.GetCourse(ctx, l.CourseID)
	if err != nil {
		return nil, err
	}

	if err := owned(ctx, c); err != nil {
		return nil, err
	}

	created, err := s.storage.CreateLesson(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	return created, nil
}

// Enroll enrolls the caller in a published course of the current tenant.
func (s *Service) Enroll(ctx context.Context, courseID string) (*types.Enrollment, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.Enroll")
	defer span.End()

	m, err := tenancy.RequireMembership(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.storage.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !c.Published {
		return nil, storage.ErrNotFound
	}

	e, err := s.storage.CreateEnrollment(ctx, c.ID, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	return e, nil
}

// ListEnrollments returns the enrollments of the caller.
func (s *Service) ListEnrollments(ctx context.Context) ([]*types.Enrollment, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.Service.ListEnrollments")
	defer span.End()

	m, err := tenancy.RequireMembership(ctx)
	if err != nil {
		return nil, err
	}

	return s.storage.ListEnrollments(ctx, m.ID)
}

func NewService(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	svc := new(Service)

	svc.storage = s

	svc.tracer = tracer
	svc.monitor = monitor
	svc.logger = logger

	return svc
}
