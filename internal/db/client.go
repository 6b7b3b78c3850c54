// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

var _ DBClientInterface = (*DBClient)(nil)

type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *DBClient) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	if l := lazyTxFromContext(ctx); l != nil {
		tx, err := l.get()
		if err == nil {
			return d.builder().RunWith(tx)
		}

		d.logger.Errorf("failed to open request transaction, falling back to pool: %v", err)
	}

	if tx := TxFromContext(ctx); tx != nil {
		return d.builder().RunWith(tx)
	}

	return d.builder().RunWith(d.db)
}

// BeginTx opens a transaction eagerly and attaches it to the returned context.
func (d *DBClient) BeginTx(ctx context.Context) (context.Context, TxInterface, error) {
	tx, err := d.db.BeginTx(ctx, txOptions)
	if err != nil {
		return ctx, nil, err
	}

	return ContextWithTx(ctx, tx), tx, nil
}

// WithTx runs fn with a lazy transaction on its context, committed when fn succeeds
// and rolled back otherwise. If fn never reaches the database nothing is opened.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	l := &lazyTx{db: d.db}

	defer func() {
		if l.started() && !l.committed {
			if err := l.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				d.logger.Errorf("failed to rollback transaction: %v", err)
			}
		}

		if l.cancel != nil {
			l.cancel()
		}
	}()

	if err := fn(context.WithValue(ctx, lazyTxKey{}, l)); err != nil {
		return err
	}

	if !l.started() {
		return nil
	}

	if err := l.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	l.committed = true

	return nil
}

// Ping checks the pool can reach the database, it also feeds the dependency gauge.
func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := d.db.PingContext(ctx)

	available := 1.0
	if err != nil {
		available = 0
	}
	d.monitor.SetDependencyAvailability(map[string]string{"component": "postgres"}, available)

	return err
}

// DB exposes the database/sql handle, used by the migration provider.
func (d *DBClient) DB() *sql.DB {
	return d.db
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if cfg.TracingEnabled {
		// uses the global tracer provider set up by the tracing package
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	// zero values keep the pgxpool defaults
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
		config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	}
	if cfg.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to record db pool stats: %w", err)
		}
	}

	d := new(DBClient)

	d.pool = pool
	d.db = stdlib.OpenDBFromPool(pool)

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	if err := d.Ping(context.Background()); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return d, nil
}
