package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-agency/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
type ClientRepo interface {
	// Create inserts a new client and returns it with the DB-generated ID.
	// Returns domain.ErrPeselTaken if another client already has the PESEL.
	Create(ctx context.Context, client domain.Client) (domain.Client, error)

	// GetByID retrieves a single client.
	// Returns domain.ErrClientNotFound if no client with that ID exists.
	GetByID(ctx context.Context, id int) (domain.Client, error)

	// Exists reports whether a client with that ID exists.
	Exists(ctx context.Context, id int) (bool, error)
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	const q = `
		INSERT INTO clients (first_name, last_name, email, telephone, pesel)
		VALUES (@first_name, @last_name, @email, @telephone, @pesel)
		RETURNING id, first_name, last_name, email, telephone, pesel`

	args := pgx.NamedArgs{
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"email":      client.Email,
		"telephone":  client.Telephone, // nil becomes NULL
		"pesel":      client.Pesel,
	}

	result, err := scanClient(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) GetByID(ctx context.Context, id int) (domain.Client, error) {
	const q = `
		SELECT id, first_name, last_name, email, telephone, pesel
		FROM clients
		WHERE id = @id`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM clients WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ClientRepo.Exists: %w", storeErr(err))
	}
	return exists, nil
}

// scanClient maps a single database row into a domain.Client.
func scanClient(s scanner) (domain.Client, error) {
	var c domain.Client
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Telephone, &c.Pesel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, storeErr(err)
	}
	return c, nil
}
