// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package catalog

import (
	"context"
	"net/http"

	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/types"
)

type ServiceInterface interface {
	ListCourses(context.Context, db.Page) ([]*types.Course, uint64, error)
	GetCourse(context.Context, string) (*types.Course, error)
	CreateCourses(context.Context, ...*types.Course) ([]*types.Course, error)
	UpdateCourse(context.Context, *types.Course, []string) (*types.Course, error)
	DeleteCourse(context.Context, string) error

	ListLessons(context.Context, string) ([]*types.Lesson, error)
	CreateLesson(context.Context, *types.Lesson) (*types.Lesson, error)

	Enroll(context.Context, string) (*types.Enrollment, error)
	ListEnrollments(context.Context) ([]*types.Enrollment, error)
}

type StorageInterface interface {
	CreateCourses(context.Context, ...*types.Course) ([]*types.Course, error)
	ListCourses(context.Context, types.CourseFilter, db.Page) ([]*types.Course, error)
	CountCourses(context.Context, types.CourseFilter) (uint64, error)
	GetCourse(context.Context, string) (*types.Course, error)
	UpdateCourse(context.Context, *types.Course, []string) (*types.Course, error)
	DeleteCourse(context.Context, string) error

	CreateLesson(context.Context, *types.Lesson) (*types.Lesson, error)
	ListLessons(context.Context, string) ([]*types.Lesson, error)

	CreateEnrollment(context.Context, string, string) (*types.Enrollment, error)
	ListEnrollments(context.Context, string) ([]*types.Enrollment, error)
}

// Guard is the part of the tenant guard the catalog routes are declared with.
type Guard interface {
	Public() func(http.Handler) http.Handler
	RequireMember() func(http.Handler) http.Handler
	RequireRole(...types.Role) func(http.Handler) http.Handler
}
