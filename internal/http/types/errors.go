// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"net/http"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// StatusFor maps an error to the status code and the message the caller gets to see.
// Messages never carry the cause: a tenant that does not exist and a tenant the caller
// does not belong to read the same.
func StatusFor(err error) (int, string) {
	if kind, ok := tenancy.KindOf(err); ok {
		switch kind {
		case tenancy.KindForbidden, tenancy.KindAuthorization:
			return http.StatusForbidden, "forbidden"
		default:
			return http.StatusInternalServerError, "internal server error"
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict, "already exists"
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return http.StatusConflict, "conflicting reference"
	}

	return http.StatusInternalServerError, "internal server error"
}

// WriteError renders err with StatusFor, server side failures are logged with their cause.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	status, message := StatusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
	} else {
		logger.Debugf("request rejected: %v", err)
	}

	write(w, Response{Message: message, Status: status})
}
