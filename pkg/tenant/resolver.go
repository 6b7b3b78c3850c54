// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/canonical/academy-service/internal/cache"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

// Source is where a tenant candidate was read from.
type Source string

const (
	SourceHeader    Source = "header"
	SourceSubdomain Source = "subdomain"
	SourceNone      Source = "none"
)

// Candidate extracts the tenant candidate of a request. A non blank header value
// wins, otherwise the first label of a host with at least three labels is used.
func Candidate(r *http.Request, header string) (string, Source) {
	if header != "" {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			return v, SourceHeader
		}
	}

	if c := HostCandidate(r.Host); c != "" {
		return c, SourceSubdomain
	}

	return "", SourceNone
}

// HostCandidate returns the subdomain label of host, or an empty string when host is
// an IP literal or has fewer than three labels.
func HostCandidate(host string) string {
	host = strings.TrimSpace(host)

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.Trim(host, "[]")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	if len(labels) < 3 || labels[0] == "" {
		return ""
	}

	return strings.ToLower(labels[0])
}

type tenantReader interface {
	GetTenantByID(context.Context, string) (*types.Tenant, error)
	GetTenantBySlug(context.Context, string) (*types.Tenant, error)
}

var _ LookupInterface = (*Resolver)(nil)

// Resolver looks tenants up by id or slug, going through the tenant cache first.
type Resolver struct {
	storage tenantReader
	cache   cache.TenantCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Lookup treats a candidate that parses as a UUID as a tenant id and anything else
// as a slug. Unknown and disabled tenants read as nil.
func (r *Resolver) Lookup(ctx context.Context, candidate string) (*types.Tenant, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.Resolver.Lookup")
	defer span.End()

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, nil
	}

	var (
		t      *types.Tenant
		cached bool
		err    error
	)

	if _, perr := uuid.Parse(candidate); perr == nil {
		if t, cached = r.cache.GetByID(ctx, candidate); !cached {
			t, err = r.storage.GetTenantByID(ctx, candidate)
		}
	} else {
		slug := strings.ToLower(candidate)
		if t, cached = r.cache.GetBySlug(ctx, slug); !cached {
			t, err = r.storage.GetTenantBySlug(ctx, slug)
		}
	}

	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look tenant up: %w", err)
	}

	if !cached {
		r.cache.Set(ctx, t)
	}

	if !t.Enabled {
		r.logger.Debugf("tenant %s is disabled", t.ID)
		return nil, nil
	}

	return t, nil
}

func NewResolver(s tenantReader, c cache.TenantCacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	r := new(Resolver)

	r.storage = s
	r.cache = c

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
