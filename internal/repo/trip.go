package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/internal/domain"
)

// TripRepo defines the read operations on the trip catalog.
// Trips are never written by this service.
type TripRepo interface {
	// GetByID retrieves a single trip with its country names.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by date_from descending,
	// plus the total number of trips in the catalog.
	ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)

	// Exists reports whether a trip with that ID exists.
	Exists(ctx context.Context, id int) (bool, error)

	// Capacity returns the trip's MaxPeople.
	// Returns domain.ErrTripNotFound if no trip with that ID exists.
	Capacity(ctx context.Context, id int) (int, error)

	// LockCapacity is Capacity with a row lock held until the surrounding
	// transaction ends. Concurrent callers for the same trip block here, which
	// serializes enrollment for that trip. Only meaningful inside a transaction.
	LockCapacity(ctx context.Context, id int) (int, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns selects a trip plus its countries. Trips with no countries get
// an empty array rather than {NULL}.
const tripColumns = `
		SELECT t.id, t.name, t.description, t.date_from, t.date_to, t.max_people,
		       COALESCE(array_agg(c.name ORDER BY c.name) FILTER (WHERE c.name IS NOT NULL), '{}') AS countries
		FROM trips t
		LEFT JOIN country_trips ct ON ct.trip_id = t.id
		LEFT JOIN countries c      ON c.id = ct.country_id`

func (r *pgTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	const q = tripColumns + `
		WHERE t.id = @id
		GROUP BY t.id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", storeErr(err))
	}

	const q = tripColumns + `
		GROUP BY t.id
		ORDER BY t.date_from DESC, t.id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", storeErr(err))
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", storeErr(err))
	}
	return trips, total, nil
}

func (r *pgTripRepo) Exists(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM trips WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.TripRepo.Exists: %w", storeErr(err))
	}
	return exists, nil
}

func (r *pgTripRepo) Capacity(ctx context.Context, id int) (int, error) {
	const q = `SELECT max_people FROM trips WHERE id = @id`

	capacity, err := scanCapacity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Capacity: %w", err)
	}
	return capacity, nil
}

func (r *pgTripRepo) LockCapacity(ctx context.Context, id int) (int, error) {
	const q = `SELECT max_people FROM trips WHERE id = @id FOR UPDATE`

	capacity, err := scanCapacity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.LockCapacity: %w", err)
	}
	return capacity, nil
}

func scanCapacity(s scanner) (int, error) {
	var capacity int
	if err := s.Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrTripNotFound
		}
		return 0, storeErr(err)
	}
	return capacity, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		dateFrom pgtype.Date
		dateTo   pgtype.Date
	)

	err := s.Scan(&t.ID, &t.Name, &t.Description, &dateFrom, &dateTo, &t.MaxPeople, &t.Countries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrTripNotFound
		}
		return domain.Trip{}, storeErr(err)
	}

	t.DateFrom = dateFrom.Time
	t.DateTo = dateTo.Time
	return t, nil
}
