// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const securityLogType = "security"

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "sys_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "sys_shutdown"))
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.l.Warn(
		"authentication failed",
		zap.String("event", "authn_login_fail"),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.l.Warn(
		"authorization failed",
		zap.String("event", "authz_fail:"+userID+","+resource),
		zap.String("user_id", userID),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) TenantBoundaryViolation(userID, tenantID, reason string) {
	s.l.Warn(
		"tenant boundary rejected request",
		zap.String("event", "authz_tenant_fail:"+userID+","+tenantID),
		zap.String("user_id", userID),
		zap.String("tenant_id", tenantID),
		zap.String("reason", reason),
	)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{
		l: l.With(zap.String("type", securityLogType)),
	}
}
