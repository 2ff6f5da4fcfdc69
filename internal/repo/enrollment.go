package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/internal/domain"
)

// EnrollmentRepo defines the persistence operations for the client_trips
// association. Each method is a single statement; the capacity and
// uniqueness rules are enforced by the service and backed by the schema.
type EnrollmentRepo interface {
	// Exists reports whether the client is already enrolled in the trip.
	Exists(ctx context.Context, clientID, tripID int) (bool, error)

	// Count returns the number of enrollments for a trip.
	Count(ctx context.Context, tripID int) (int, error)

	// Insert stores an enrollment. Returns domain.ErrAlreadyEnrolled when the
	// pair exists and domain.ErrCapacityExceeded when the store-side capacity
	// guard rejects the row.
	Insert(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error)

	// Delete removes an enrollment.
	// Returns domain.ErrEnrollmentNotFound if no row was deleted.
	Delete(ctx context.Context, clientID, tripID int) error

	// ListByClient returns the client's enrollments joined with trip summaries,
	// most recent registration first.
	ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

// pgEnrollmentRepo is the Postgres implementation of EnrollmentRepo.
type pgEnrollmentRepo struct {
	db db
}

// NewEnrollmentRepo constructs an EnrollmentRepo backed by the provided db connection.
func NewEnrollmentRepo(db db) EnrollmentRepo {
	return &pgEnrollmentRepo{db: db}
}

func (r *pgEnrollmentRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM client_trips
			WHERE client_id = @client_id AND trip_id = @trip_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.EnrollmentRepo.Exists: %w", storeErr(err))
	}
	return exists, nil
}

func (r *pgEnrollmentRepo) Count(ctx context.Context, tripID int) (int, error) {
	const q = `SELECT count(*) FROM client_trips WHERE trip_id = @trip_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.EnrollmentRepo.Count: %w", storeErr(err))
	}
	return n, nil
}

func (r *pgEnrollmentRepo) Insert(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	const q = `
		INSERT INTO client_trips (client_id, trip_id, registered_at, payment_date)
		VALUES (@client_id, @trip_id, @registered_at, @payment_date)`

	args := pgx.NamedArgs{
		"client_id":     e.ClientID,
		"trip_id":       e.TripID,
		"registered_at": int32(e.RegisteredAt),
		"payment_date":  compactDateArg(e.PaymentDate),
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return domain.Enrollment{}, fmt.Errorf("repo.EnrollmentRepo.Insert: %w", storeErr(err))
	}
	return e, nil
}

func (r *pgEnrollmentRepo) Delete(ctx context.Context, clientID, tripID int) error {
	const q = `DELETE FROM client_trips WHERE client_id = @client_id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.EnrollmentRepo.Delete: %w", storeErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EnrollmentRepo.Delete: %w", domain.ErrEnrollmentNotFound)
	}
	return nil
}

func (r *pgEnrollmentRepo) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	const q = `
		SELECT t.id, t.name, t.description, t.date_from, t.date_to,
		       ct.registered_at, ct.payment_date
		FROM client_trips ct
		JOIN trips t ON t.id = ct.trip_id
		WHERE ct.client_id = @client_id
		ORDER BY ct.registered_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("repo.EnrollmentRepo.ListByClient: %w", storeErr(err))
	}
	defer rows.Close()

	out := []domain.ClientTrip{}
	for rows.Next() {
		ct, err := scanClientTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EnrollmentRepo.ListByClient: scan: %w", storeErr(err))
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EnrollmentRepo.ListByClient: rows: %w", storeErr(err))
	}
	return out, nil
}

func scanClientTrip(s scanner) (domain.ClientTrip, error) {
	var (
		ct           domain.ClientTrip
		dateFrom     pgtype.Date
		dateTo       pgtype.Date
		registeredAt int32
		paymentDate  pgtype.Int4
	)

	err := s.Scan(&ct.TripID, &ct.Name, &ct.Description, &dateFrom, &dateTo, &registeredAt, &paymentDate)
	if err != nil {
		return domain.ClientTrip{}, err
	}

	ct.DateFrom = dateFrom.Time
	ct.DateTo = dateTo.Time
	ct.RegisteredAt = domain.CompactDate(registeredAt)
	if paymentDate.Valid {
		pd := domain.CompactDate(paymentDate.Int32)
		ct.PaymentDate = &pd
	}
	return ct, nil
}

// compactDateArg converts an optional date into a driver argument; nil becomes NULL.
func compactDateArg(d *domain.CompactDate) *int32 {
	if d == nil {
		return nil
	}
	v := int32(*d)
	return &v
}
