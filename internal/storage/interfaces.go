// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/types"
)

// TenantStorageInterface reads and writes the tenant registry, which is global.
type TenantStorageInterface interface {
	CreateTenant(context.Context, *types.Tenant) (*types.Tenant, error)
	GetTenantByID(context.Context, string) (*types.Tenant, error)
	GetTenantBySlug(context.Context, string) (*types.Tenant, error)
	ListTenants(context.Context) ([]*types.Tenant, error)
	UpdateTenant(context.Context, *types.Tenant, []string) (*types.Tenant, error)
	DeleteTenant(context.Context, string) error
}

// MembershipStorageInterface operates on the memberships of the tenant in the context.
type MembershipStorageInterface interface {
	EnsurePrincipal(context.Context, *types.Principal) error
	AddMember(context.Context, string, types.Role) (*types.Membership, error)
	GetMembership(context.Context, string) (*types.Membership, error)
	ListMembers(context.Context) ([]*types.Membership, error)
	UpdateMemberRole(context.Context, string, types.Role) (*types.Membership, error)
	RemoveMember(context.Context, string) error
}

// CatalogStorageInterface operates on the catalog of the tenant in the context.
type CatalogStorageInterface interface {
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

type StorageInterface interface {
	TenantStorageInterface
	MembershipStorageInterface
	CatalogStorageInterface
}
