// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"slices"
	"time"
)

// Role is the role a principal holds inside a single tenant.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains([]Role{RoleAdmin, RoleInstructor, RoleStudent}, r)
}

type Tenant struct {
	ID           string    `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Name         string    `db:"name" json:"name"`
	LogoURL      string    `db:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor string    `db:"primary_color" json:"primary_color,omitempty"`
	Enabled      bool      `db:"enabled" json:"enabled"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Principal is a global login identity, it is not bound to any tenant.
type Principal struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}

type Membership struct {
	ID          string    `db:"id" json:"id"`
	TenantID    string    `db:"tenant_id" json:"tenant_id"`
	PrincipalID string    `db:"principal_id" json:"principal_id"`
	Email       string    `db:"email" json:"email"`
	Role        Role      `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Course struct {
	ID           string    `db:"id" json:"id"`
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	Slug         string    `db:"slug" json:"slug"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	InstructorID string    `db:"instructor_id" json:"instructor_id"`
	Published    bool      `db:"published" json:"published"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CourseFilter narrows a course listing. DraftsOf, when set, also returns the
// unpublished courses owned by that instructor membership.
type CourseFilter struct {
	PublishedOnly bool
	DraftsOf      string
}

type Lesson struct {
	ID        string    `db:"id" json:"id"`
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Title     string    `db:"title" json:"title"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Enrollment struct {
	ID           string    `db:"id" json:"id"`
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	MembershipID string    `db:"membership_id" json:"membership_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
