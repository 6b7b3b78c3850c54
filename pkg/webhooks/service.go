// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	provisioner ProvisionerInterface
	memberships MembershipReaderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HandleRegistration makes a freshly registered identity a student of the tenant
// it signed up on. Replays are answered with the existing membership, the bool
// reports whether a membership was created.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) (*types.Membership, bool, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	tenantID, ok := tenancy.FromContext(ctx)
	if !ok {
		return nil, false, tenancy.ErrTenantContextMissing
	}

	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return nil, false, fmt.Errorf("%w: identity id is empty", httptypes.ErrInvalidInput)
	}

	m, err := s.memberships.GetMembership(ctx, identityID)
	switch {
	case err == nil:
		s.logger.Debugf("identity %s is already a member of tenant %s", identityID, tenantID)
		return m, false, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, false, fmt.Errorf("failed to read membership: %w", err)
	}

	m, err = s.provisioner.ProvisionMember(ctx, &types.Principal{ID: identityID, Email: email}, types.RoleStudent)
	if err != nil {
		return nil, false, err
	}

	s.logger.Infof("provisioned identity %s as %s of tenant %s", identityID, m.Role, tenantID)

	return m, true, nil
}

func NewService(provisioner ProvisionerInterface, memberships MembershipReaderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.provisioner = provisioner
	s.memberships = memberships

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
