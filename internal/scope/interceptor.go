// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scope

import (
	"context"
	"fmt"
	"maps"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
)

// Interceptor confines queries on tenant scoped entities to the tenant established on
// the request context. Reads, updates and deletes get an extra equality predicate on
// the tenant column, inserts get the tenant column stamped on every row. Everything
// else the caller put on the builder is left as is.
//
// Without a tenant on the context the builder is returned unchanged, unless the
// interceptor is strict, in which case only contexts marked with
// tenancy.WithoutTenant may go through.
type Interceptor struct {
	strict bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (i *Interceptor) tenant(ctx context.Context, e Entity, op string) (string, bool, error) {
	if !e.valid() {
		return "", false, ErrUnknownEntity
	}

	if id, ok := tenancy.FromContext(ctx); ok {
		return id, true, nil
	}

	if tenancy.IsUnscoped(ctx) {
		return "", false, nil
	}

	if i.strict {
		i.logger.Errorf("refusing %s on %s without tenant context", op, e.table)
		i.monitor.IncUnscopedQueryMetric(map[string]string{"table": e.table, "operation": op})
		return "", false, fmt.Errorf("%s %s: %w", op, e.table, tenancy.ErrUnscopedAccess)
	}

	i.logger.Debugf("%s on %s runs without tenant context", op, e.table)
	return "", false, nil
}

// Select constrains a read, count included, to the current tenant.
func (i *Interceptor) Select(ctx context.Context, e Entity, q sq.SelectBuilder) (sq.SelectBuilder, error) {
	_, span := i.tracer.Start(ctx, "scope.Interceptor.Select")
	defer span.End()

	id, ok, err := i.tenant(ctx, e, "select")
	if err != nil {
		return q, err
	}

	if ok {
		q = q.Where(sq.Eq{e.TenantColumn(): id})
	}

	return q, nil
}

// Update constrains an update by filter to the current tenant.
func (i *Interceptor) Update(ctx context.Context, e Entity, q sq.UpdateBuilder) (sq.UpdateBuilder, error) {
	_, span := i.tracer.Start(ctx, "scope.Interceptor.Update")
	defer span.End()

	id, ok, err := i.tenant(ctx, e, "update")
	if err != nil {
		return q, err
	}

	if ok {
		q = q.Where(sq.Eq{e.TenantColumn(): id})
	}

	return q, nil
}

// Delete constrains a delete by filter to the current tenant.
func (i *Interceptor) Delete(ctx context.Context, e Entity, q sq.DeleteBuilder) (sq.DeleteBuilder, error) {
	_, span := i.tracer.Start(ctx, "scope.Interceptor.Delete")
	defer span.End()

	id, ok, err := i.tenant(ctx, e, "delete")
	if err != nil {
		return q, err
	}

	if ok {
		q = q.Where(sq.Eq{e.TenantColumn(): id})
	}

	return q, nil
}

// Insert builds a single or multi row insert into e, stamping the current tenant on
// every row. Rows are copied, the caller's maps are not modified. All rows must carry
// the same set of columns.
func (i *Interceptor) Insert(ctx context.Context, b sq.StatementBuilderType, e Entity, rows ...map[string]interface{}) (sq.InsertBuilder, error) {
	_, span := i.tracer.Start(ctx, "scope.Interceptor.Insert")
	defer span.End()

	if len(rows) == 0 {
		return sq.InsertBuilder{}, ErrEmptyBatch
	}

	id, ok, err := i.tenant(ctx, e, "insert")
	if err != nil {
		return sq.InsertBuilder{}, err
	}

	stamped := make([]map[string]interface{}, len(rows))
	for n, row := range rows {
		r := maps.Clone(row)
		if r == nil {
			r = make(map[string]interface{})
		}
		if ok {
			r[e.tenantColumn] = id
		}
		stamped[n] = r
	}

	columns := slices.Sorted(maps.Keys(stamped[0]))

	q := b.Insert(e.table).Columns(columns...)
	for _, r := range stamped {
		if len(r) != len(columns) {
			return sq.InsertBuilder{}, ErrColumnsMismatch
		}

		values := make([]interface{}, len(columns))
		for n, c := range columns {
			v, found := r[c]
			if !found {
				return sq.InsertBuilder{}, ErrColumnsMismatch
			}
			values[n] = v
		}
		q = q.Values(values...)
	}

	return q, nil
}

func NewInterceptor(strict bool, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Interceptor {
	i := new(Interceptor)

	i.strict = strict

	i.tracer = tracer
	i.monitor = monitor
	i.logger = logger

	return i
}
