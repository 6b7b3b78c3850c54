// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package kratos finds and registers principals in the Kratos identity store.
package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

// ErrIdentityNotFound is returned when no identity holds the email.
var ErrIdentityNotFound = errors.New("identity not found")

type ClientInterface interface {
	FindPrincipal(ctx context.Context, email string) (*types.Principal, error)
	CreatePrincipal(ctx context.Context, email string) (*types.Principal, error)
}

type Client struct {
	client   *ory.APIClient
	schemaID string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// FindPrincipal returns the principal registered with email.
func (c *Client) FindPrincipal(ctx context.Context, email string) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.FindPrincipal")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))

	// NOTE: an empty page token works around https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return nil, ErrIdentityNotFound
	}

	return &types.Principal{ID: ids[0].Id, Email: email}, nil
}

// CreatePrincipal registers a new identity for email.
func (c *Client) CreatePrincipal(ctx context.Context, email string) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.CreatePrincipal")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))

	body := ory.CreateIdentityBody{
		SchemaId: c.schemaID,
		Traits:   map[string]interface{}{"email": email},
	}

	identity, _, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	c.logger.Infof("created identity %s for %s", identity.Id, email)

	return &types.Principal{ID: identity.Id, Email: email}, nil
}

func NewClient(adminURL, schemaID string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: adminURL}}

	c := new(Client)

	c.client = ory.NewAPIClient(conf)
	c.schemaID = schemaID

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
