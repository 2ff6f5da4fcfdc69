// Package repo contains all database access logic for the Travel Agency API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here: only SQL, type mapping, and translation of
// store errors into domain errors.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travel-agency/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner is a db that can open a transaction. On *pgxpool.Pool this starts
// a real transaction; on pgx.Tx it creates a savepoint.
type beginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles the repositories bound to one connection or transaction.
type Repos struct {
	Clients     ClientRepo
	Trips       TripRepo
	Enrollments EnrollmentRepo
}

// NewRepos builds every repository on top of the same db.
func NewRepos(db db) Repos {
	return Repos{
		Clients:     NewClientRepo(db),
		Trips:       NewTripRepo(db),
		Enrollments: NewEnrollmentRepo(db),
	}
}

// Transactor runs a unit of work inside a single database transaction.
type Transactor interface {
	// WithinTx calls fn with repositories bound to a new transaction.
	// The transaction commits when fn returns nil and rolls back otherwise,
	// including on panic and context cancellation.
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor on top of the provided connection.
// In production pass *pgxpool.Pool; in tests a pgx.Tx gives nested savepoints.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// SQLSTATE codes the repositories translate.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// Constraint names from migrations/00001_create_schema.sql.
const (
	constraintEnrollmentPair     = "client_trips_pkey"
	constraintEnrollmentCapacity = "client_trips_capacity"
	constraintEnrollmentClient   = "client_trips_client_id_fkey"
	constraintEnrollmentTrip     = "client_trips_trip_id_fkey"
	constraintClientPesel        = "clients_pesel_key"
)

// storeErr maps a driver error onto the domain taxonomy. Constraint
// violations that carry business meaning become their domain sentinel;
// everything else is marked as ErrPersistence while keeping the original
// error in the chain for logging.
func storeErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintEnrollmentPair:
			return domain.ErrAlreadyEnrolled
		case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintClientPesel:
			return domain.ErrPeselTaken
		case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == constraintEnrollmentCapacity:
			return domain.ErrCapacityExceeded
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraintEnrollmentClient:
			return domain.ErrClientNotFound
		case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraintEnrollmentTrip:
			return domain.ErrTripNotFound
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
