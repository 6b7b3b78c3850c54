// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: ErrNotFound},
		{name: "malformed uuid", err: &pgconn.PgError{Code: pgErrCodeInvalidText}, want: ErrNotFound},
		{name: "unique", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgErrCodeUniqueViolation}), want: ErrDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: pgErrCodeForeignKeyViolation}, want: ErrForeignKeyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := classify(tt.err, "op"); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if classify(nil, "op") != nil {
		t.Error("expected nil error")
	}

	other := errors.New("connection reset")
	err := classify(other, "op")
	if !errors.Is(err, other) || errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected classification %v", err)
	}
}
