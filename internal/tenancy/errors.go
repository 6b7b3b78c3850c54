// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"errors"
)

// Kind classifies tenancy errors by who is at fault and how they surface.
type Kind int

const (
	// KindConfiguration signals a wiring bug: code assumed a tenant or membership
	// that the request pipeline never established.
	KindConfiguration Kind = iota + 1
	// KindForbidden rejects a caller at the tenant boundary.
	KindForbidden
	// KindAuthorization rejects a member whose role is not allowed on the route.
	KindAuthorization
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindForbidden:
		return "forbidden"
	case KindAuthorization:
		return "authorization"
	default:
		return "unknown"
	}
}

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

var (
	ErrContextNotInitialized    = &Error{kind: KindConfiguration, msg: "tenant context not initialized"}
	ErrTenantAlreadyEstablished = &Error{kind: KindConfiguration, msg: "tenant context already established"}
	ErrMembershipNotAttached    = &Error{kind: KindConfiguration, msg: "membership not attached to request"}
	ErrUnscopedAccess           = &Error{kind: KindConfiguration, msg: "tenant scoped access outside tenant context"}

	ErrTenantContextMissing = &Error{kind: KindForbidden, msg: "tenant context missing"}
	ErrNotMember            = &Error{kind: KindForbidden, msg: "not a member of this tenant"}

	ErrRoleNotPermitted = &Error{kind: KindAuthorization, msg: "role not permitted"}
)

// KindOf returns the kind of the first tenancy error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}
