package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestConfigure_RetriesPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	opts := Options{MaxOpenConns: 2, MaxIdleConns: 1, Retries: 2, RetryBackoff: time.Millisecond}
	if err := configure(context.Background(), sqlx.NewDb(db, "mysql"), opts); err != nil {
		t.Fatalf("configure = %v, want nil after retry", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigure_GivesUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	down := errors.New("connection refused")
	mock.ExpectPing().WillReturnError(down)
	mock.ExpectPing().WillReturnError(down)

	opts := Options{Retries: 1, RetryBackoff: time.Millisecond}
	err = configure(context.Background(), sqlx.NewDb(db, "mysql"), opts)
	if !errors.Is(err, down) {
		t.Fatalf("configure = %v, want wrapped ping error", err)
	}
}
