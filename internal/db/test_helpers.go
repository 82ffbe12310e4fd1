package db

import (
	"database/sql"
	"io"
	"log/slog"
)

// NewTestDB wraps an already-open connection for the repository test
// suites, which manage their own DSN and ping-or-skip logic. Log output
// is discarded; the tests assert on rows, not logs.
func NewTestDB(sqlDB *sql.DB) *DB {
	return &DB{
		DB:     sqlDB,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
