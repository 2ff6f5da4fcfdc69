// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when no database is available,
// so unit tests can run without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
)

// DSNEnv names the environment variable holding the test database URL.
const DSNEnv = "TEST_DATABASE_URL"

// NewPool opens a *pgxpool.Pool connected to the test database.
// The test is skipped if no database is configured. The pool is closed
// automatically when the test (and all its subtests) finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction on a fresh pool and rolls it back when the test
// finishes, so every row a test writes disappears afterwards.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := NewPool(t)

	tx, err := pool.Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// NewSQLDB opens a *sql.DB connected to the test database using the pgx
// database/sql driver. Use it where goose needs database/sql.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB opens a *sql.DB for the given DSN and panics on any error.
// Use this in TestMain functions where no *testing.T is available.
// Callers are responsible for closing the returned *sql.DB.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: open: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil.MustOpenSQLDB: ping: " + err.Error())
	}
	return db
}

// execer is the subset of pgx.Tx / *pgxpool.Pool the fixture helpers need.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertTrip adds a catalog trip directly with SQL, since the API has no
// trip write path, and returns its ID.
func InsertTrip(t *testing.T, db execer, name string, maxPeople int) int {
	t.Helper()
	const q = `
		INSERT INTO trips (name, description, date_from, date_to, max_people)
		VALUES ($1, 'fixture', DATE '2026-07-01', DATE '2026-07-10', $2)
		RETURNING id`

	var id int
	if err := db.QueryRow(context.Background(), q, name, maxPeople).Scan(&id); err != nil {
		t.Fatalf("testutil.InsertTrip: %v", err)
	}
	return id
}

// InsertClient adds a client with a unique PESEL and returns its ID.
func InsertClient(t *testing.T, db execer, lastName string) int {
	t.Helper()
	const q = `
		INSERT INTO clients (first_name, last_name, email, pesel)
		VALUES ('Test', $1, $2, $3)
		RETURNING id`

	pesel := UniquePesel()
	var id int
	if err := db.QueryRow(context.Background(), q, lastName, pesel+"@example.com", pesel).Scan(&id); err != nil {
		t.Fatalf("testutil.InsertClient: %v", err)
	}
	return id
}

// UniquePesel returns an 11-digit string derived from a random UUID, so
// fixtures never collide on the clients.pesel unique constraint.
func UniquePesel() string {
	id := uuid.New()
	return fmt.Sprintf("%011d", binary.BigEndian.Uint64(id[:8])%100_000_000_000)
}

// requireDSN returns the test database URL, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " not set; skipping integration test")
	}
	return dsn
}
