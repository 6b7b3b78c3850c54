// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "DEBUG", want: zapcore.DebugLevel},
		{level: "info", want: zapcore.InfoLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "invalid", want: zapcore.ErrorLevel},
		{level: "", want: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(tt.level)

			if got := logger.Level(); got != tt.want {
				t.Errorf("level %q = %s, want %s", tt.level, got, tt.want)
			}
		})
	}
}

func TestSecurityEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newSecurityLogger(zap.New(core))

	s.SystemStartup()
	s.AuthnFailure("token expired")
	s.TenantBoundaryViolation("principal-1", "acme", "not_member")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for _, e := range entries {
		if e.ContextMap()["type"] != securityLogType {
			t.Errorf("entry %q is not tagged as security", e.Message)
		}
	}

	boundary := entries[2].ContextMap()
	if boundary["tenant_id"] != "acme" || boundary["reason"] != "not_member" {
		t.Errorf("unexpected boundary fields %v", boundary)
	}

	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("authentication failures must be warnings, got %s", entries[1].Level)
	}
}

func TestNoopLoggerSecurityEvents(t *testing.T) {
	logger := NewNoopLogger()

	logger.Security().SystemStartup()
	logger.Security().AuthzFailure("principal-1", "tenant:acme")
	logger.Security().TenantBoundaryViolation("principal-1", "acme", "not a member")
	logger.Security().SystemShutdown()
}
