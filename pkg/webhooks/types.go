// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// Identity is the body the identity provider posts after a sign up.
type Identity struct {
	ID     string `json:"id" validate:"required"`
	Traits Traits `json:"traits"`
}

type Traits struct {
	Email string `json:"email" validate:"omitempty,email"`
}
