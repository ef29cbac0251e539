// Package database centralises sqlx connection helpers.  The driver is
// go-sql-driver/mysql, which also works with MariaDB.
//
// Public entry points:
//
//	Open(ctx, dsn, opts)  – pool with explicit sizing and ping retries.
//	DefaultOptions()      – global pool sizing.
//	TenantOptions()       – small per-tenant pools.
//
// Open pings before returning so callers fail fast during bootstrap.
// Callers Close() the returned *sqlx.DB when done.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Options tunes one pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Retries         int           // extra ping attempts after the first
	RetryBackoff    time.Duration // doubled after every failed attempt
}

// DefaultOptions sizes the process-wide pool.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    15,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		Retries:         3,
		RetryBackoff:    time.Second,
	}
}

// TenantOptions keeps per-tenant resource usage small.
func TenantOptions() Options {
	return Options{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		Retries:         2,
		RetryBackoff:    500 * time.Millisecond,
	}
}

// Open returns a pinged *sqlx.DB.
func Open(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}
	if err := configure(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// configure applies pool sizing and pings with backoff.  Split from Open so
// tests can drive it with a sqlmock handle.
func configure(ctx context.Context, db *sqlx.DB, opts Options) error {
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	backoff := opts.RetryBackoff
	var err error
	for attempt := 0; ; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt >= opts.Retries {
			break
		}
		zap.S().Warnw("database ping failed, retrying",
			"attempt", attempt+1, "backoff", backoff, "err", err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("database ping: %w", ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("database ping: %w", err)
}
