// Package handler implements the HTTP handlers for the Travel Agency API.
// All handlers are methods on Server. Methods are split into resource files
// (client.go, trip.go, enrollment.go, health.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-agency/internal/domain"
)

// ClientServicer defines the client operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ClientServicer interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id int) (domain.Client, error)
}

// TripServicer defines the catalog operations the handlers depend on.
type TripServicer interface {
	ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)
	GetByID(ctx context.Context, id int) (domain.Trip, error)
}

// EnrollmentServicer defines the enrollment operations the handlers depend on.
type EnrollmentServicer interface {
	Enroll(ctx context.Context, clientID, tripID int, paymentDate *domain.CompactDate) (domain.Enrollment, error)
	Unenroll(ctx context.Context, clientID, tripID int) error
	ListForClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies of every endpoint.
type Server struct {
	clients     ClientServicer
	trips       TripServicer
	enrollments EnrollmentServicer
	db          Pinger
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// db may be nil, in which case /healthz only reports process liveness.
func NewServer(clients ClientServicer, trips TripServicer, enrollments EnrollmentServicer, db Pinger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{clients: clients, trips: trips, enrollments: enrollments, db: db, log: log}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/clients", func(r chi.Router) {
		r.Post("/", s.CreateClient)
		r.Get("/{id}", s.GetClient)
		r.Get("/{id}/trips", s.ListClientTrips)
		r.Put("/{idClient}/trips/{idTrip}", s.EnrollClient)
		r.Delete("/{idClient}/trips/{idTrip}", s.UnenrollClient)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
	})
}
