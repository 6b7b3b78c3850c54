// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"time"
)

const defaultTxTimeout = 60 * time.Second

var txOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

type txKey struct{}
type lazyTxKey struct{}

// lazyTx opens its transaction on first use, requests that never touch the
// database never pay for one.
type lazyTx struct {
	db *sql.DB

	tx        TxInterface
	cancel    context.CancelFunc
	committed bool
}

func (l *lazyTx) get() (TxInterface, error) {
	if l.tx != nil {
		return l.tx, nil
	}

	// detached from the request so a cancelled client does not abort the commit
	ctx, cancel := context.WithTimeout(context.Background(), defaultTxTimeout)

	tx, err := l.db.BeginTx(ctx, txOptions)
	if err != nil {
		cancel()
		return nil, err
	}

	l.tx = tx
	l.cancel = cancel

	return tx, nil
}

func (l *lazyTx) started() bool {
	return l.tx != nil
}

// ContextWithTx attaches tx to ctx, Statement picks it up from there.
func ContextWithTx(ctx context.Context, tx TxInterface) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction attached to ctx, nil if there is none.
func TxFromContext(ctx context.Context) TxInterface {
	tx, _ := ctx.Value(txKey{}).(TxInterface)
	return tx
}

func lazyTxFromContext(ctx context.Context) *lazyTx {
	l, _ := ctx.Value(lazyTxKey{}).(*lazyTx)
	return l
}
