// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "tenant missing", err: tenancy.ErrTenantContextMissing, status: http.StatusForbidden, message: "forbidden"},
		{name: "not a member", err: fmt.Errorf("guard: %w", tenancy.ErrNotMember), status: http.StatusForbidden, message: "forbidden"},
		{name: "role", err: tenancy.ErrRoleNotPermitted, status: http.StatusForbidden, message: "forbidden"},
		{name: "context not initialized", err: tenancy.ErrContextNotInitialized, status: http.StatusInternalServerError, message: "internal server error"},
		{name: "unscoped", err: tenancy.ErrUnscopedAccess, status: http.StatusInternalServerError, message: "internal server error"},
		{name: "unauthorized", err: ErrUnauthorized, status: http.StatusUnauthorized, message: "unauthorized"},
		{name: "invalid input", err: fmt.Errorf("%w: title is required", ErrInvalidInput), status: http.StatusBadRequest, message: "invalid input: title is required"},
		{name: "not found", err: fmt.Errorf("get course: %w", storage.ErrNotFound), status: http.StatusNotFound, message: "not found"},
		{name: "duplicate", err: storage.ErrDuplicateKey, status: http.StatusConflict, message: "already exists"},
		{name: "foreign key", err: storage.ErrForeignKeyViolation, status: http.StatusConflict, message: "conflicting reference"},
		{name: "unknown", err: errors.New("pq: connection reset"), status: http.StatusInternalServerError, message: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			WriteError(rr, tt.err, logging.NewNoopLogger())

			if rr.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rr.Code)
			}

			var body Response
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}

			if body.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, body.Message)
			}

			if body.Status != tt.status {
				t.Errorf("expected body status %d, got %d", tt.status, body.Status)
			}
		})
	}
}

func TestWritePage(t *testing.T) {
	rr := httptest.NewRecorder()

	WritePage(rr, []string{"a", "b"}, Pagination{Page: 2, Size: 2, Total: 5})

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}

	var body struct {
		Data []string   `json:"data"`
		Meta Pagination `json:"_meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}

	if len(body.Data) != 2 || body.Meta.Total != 5 || body.Meta.Page != 2 {
		t.Errorf("unexpected page %+v", body)
	}
}
