// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package tenancy carries the tenant a request belongs to, and the membership of the
// calling principal in that tenant, on the request context.
//
// The tenant is established once per request by the resolution middleware and is
// never replaced afterwards. Every goroutine that receives the derived context, or a
// context derived from it, observes the same tenant; code holding any other context
// observes none. There is no process wide state.
package tenancy
