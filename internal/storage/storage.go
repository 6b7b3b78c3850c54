// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/canonical/academy-service/internal/db"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/scope"
	"github.com/canonical/academy-service/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

// Storage is the postgres data access layer. Every query on a tenant owned table is
// passed through the scope interceptor before it runs.
type Storage struct {
	db    db.DBClientInterface
	scope *scope.Interceptor

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

type scanner interface {
	Scan(...interface{}) error
}

func rowsAffected(res interface{ RowsAffected() (int64, error) }, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func returning(columns ...string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func NewStorage(c db.DBClientInterface, interceptor *scope.Interceptor, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c
	s.scope = interceptor

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
