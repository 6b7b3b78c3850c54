// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scope

// Entity is a table whose rows belong to exactly one tenant.
// Values can only be declared in this package, which keeps the set of tenant scoped
// tables closed: a table missing from this list cannot be passed to the Interceptor.
type Entity struct {
	table        string
	tenantColumn string
}

var (
	Memberships = Entity{table: "memberships", tenantColumn: "tenant_id"}
	Courses     = Entity{table: "courses", tenantColumn: "tenant_id"}
	Lessons     = Entity{table: "lessons", tenantColumn: "tenant_id"}
	Enrollments = Entity{table: "enrollments", tenantColumn: "tenant_id"}
)

// Table returns the table name, for FROM/INTO clauses.
func (e Entity) Table() string {
	return e.table
}

// TenantColumn returns the tenant column qualified with the table name.
func (e Entity) TenantColumn() string {
	return e.table + "." + e.tenantColumn
}

func (e Entity) valid() bool {
	return e.table != "" && e.tenantColumn != ""
}
