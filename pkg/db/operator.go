package db

import (
	"context"

	"github.com/gnames/gnview/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Conn is the connection handle every view lifecycle component receives
// explicitly. It is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
//
// Begin is used for the short multi-statement critical sections (in-place
// and side-by-side updates). When Conn is already a transaction, Begin
// creates a savepoint.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Operator defines the interface for database connection management.
// It owns the connection pool and hands it out as a Conn to the view
// lifecycle components.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// Conn returns the pool as a Conn, or nil when not connected.
	Conn() Conn
}
