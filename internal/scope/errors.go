// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scope

import "errors"

var (
	ErrUnknownEntity   = errors.New("unknown tenant scoped entity")
	ErrEmptyBatch      = errors.New("no rows to insert")
	ErrColumnsMismatch = errors.New("batch rows do not share the same columns")
)
