// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/academy-service/internal/logging"
)

type recordingClient struct {
	calls int
	err   error
}

func (c *recordingClient) Statement(context.Context) sq.StatementBuilderType {
	return sq.StatementBuilder
}

func (c *recordingClient) BeginTx(ctx context.Context) (context.Context, TxInterface, error) {
	return ctx, nil, nil
}

func (c *recordingClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.calls++
	c.err = fn(ctx)
	return c.err
}

func (c *recordingClient) Ping(context.Context) error {
	return nil
}

func (c *recordingClient) Close() {}

func TestTransactionMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		status     int
		wantTx     bool
		wantCommit bool
	}{
		{name: "get skips transaction", method: http.MethodGet, status: http.StatusOK},
		{name: "post commits", method: http.MethodPost, status: http.StatusCreated, wantTx: true, wantCommit: true},
		{name: "patch rolls back on 403", method: http.MethodPatch, status: http.StatusForbidden, wantTx: true},
		{name: "delete rolls back on 500", method: http.MethodDelete, status: http.StatusInternalServerError, wantTx: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(recordingClient)

			handler := TransactionMiddleware(client, logging.NewNoopLogger())(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}),
			)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, "/api/v0/courses", nil))

			if rr.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rr.Code)
			}

			if (client.calls == 1) != tt.wantTx {
				t.Fatalf("expected transaction %v, got %d calls", tt.wantTx, client.calls)
			}

			if tt.wantTx && (client.err == nil) != tt.wantCommit {
				t.Errorf("expected commit %v, got error %v", tt.wantCommit, client.err)
			}
		})
	}
}
