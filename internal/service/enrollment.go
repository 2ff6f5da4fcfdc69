package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/metrics"
	"github.com/pkordes/travel-agency/internal/repo"
)

const tracerName = "github.com/pkordes/travel-agency/internal/service"

// EnrollmentService registers clients for trips.
//
// Enroll keeps two invariants under concurrent callers: a client appears at
// most once per trip, and a trip never holds more than MaxPeople clients.
// The checks and the insert run in one transaction that first locks the trip
// row, so concurrent enrollments for the same trip are serialized while
// different trips proceed independently.
type EnrollmentService struct {
	clients     repo.ClientRepo
	enrollments repo.EnrollmentRepo
	tx          repo.Transactor
	metrics     *metrics.Metrics
	log         *slog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// EnrollmentOption customizes an EnrollmentService.
type EnrollmentOption func(*EnrollmentService)

// WithClock overrides the clock used to stamp RegisteredAt.
func WithClock(now func() time.Time) EnrollmentOption {
	return func(s *EnrollmentService) { s.now = now }
}

// WithMetrics records enrollment outcomes on m.
func WithMetrics(m *metrics.Metrics) EnrollmentOption {
	return func(s *EnrollmentService) { s.metrics = m }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) EnrollmentOption {
	return func(s *EnrollmentService) { s.tracer = t }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) EnrollmentOption {
	return func(s *EnrollmentService) { s.log = l }
}

// NewEnrollmentService constructs an EnrollmentService. reads serves the
// single-statement paths (list, unenroll); tx runs Enroll's unit of work.
func NewEnrollmentService(reads repo.Repos, tx repo.Transactor, opts ...EnrollmentOption) *EnrollmentService {
	s := &EnrollmentService{
		clients:     reads.Clients,
		enrollments: reads.Enrollments,
		tx:          tx,
		log:         slog.Default(),
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enroll registers a client for a trip with an optional payment date.
//
// Preconditions are checked in a fixed order and the first failure wins:
//  1. domain.ErrClientNotFound
//  2. domain.ErrTripNotFound
//  3. domain.ErrAlreadyEnrolled
//  4. domain.ErrCapacityExceeded
//
// A malformed payment date is rejected with domain.ErrValidation before any
// store access. On cancellation the transaction rolls back and nothing is stored.
func (s *EnrollmentService) Enroll(ctx context.Context, clientID, tripID int, paymentDate *domain.CompactDate) (domain.Enrollment, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.Enroll", trace.WithAttributes(
		attribute.Int("client.id", clientID),
		attribute.Int("trip.id", tripID),
	))
	defer span.End()

	created, err := s.enroll(ctx, clientID, tripID, paymentDate)
	s.observeEnroll(err, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enroll failed")
		return domain.Enrollment{}, fmt.Errorf("service.EnrollmentService.Enroll: %w", err)
	}

	s.log.InfoContext(ctx, "client enrolled",
		"client_id", clientID,
		"trip_id", tripID,
		"registered_at", int(created.RegisteredAt),
	)
	return created, nil
}

func (s *EnrollmentService) enroll(ctx context.Context, clientID, tripID int, paymentDate *domain.CompactDate) (domain.Enrollment, error) {
	if paymentDate != nil {
		if err := paymentDate.Validate(); err != nil {
			return domain.Enrollment{}, fmt.Errorf("payment_date: %w", err)
		}
	}

	var created domain.Enrollment
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		ok, err := r.Clients.Exists(ctx, clientID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrClientNotFound
		}

		// Holds the trip row lock until commit; returns ErrTripNotFound when absent.
		capacity, err := r.Trips.LockCapacity(ctx, tripID)
		if err != nil {
			return err
		}

		enrolled, err := r.Enrollments.Exists(ctx, clientID, tripID)
		if err != nil {
			return err
		}
		if enrolled {
			return domain.ErrAlreadyEnrolled
		}

		taken, err := r.Enrollments.Count(ctx, tripID)
		if err != nil {
			return err
		}
		if taken >= capacity {
			return domain.ErrCapacityExceeded
		}

		created, err = r.Enrollments.Insert(ctx, domain.Enrollment{
			ClientID:     clientID,
			TripID:       tripID,
			RegisteredAt: domain.NewCompactDate(s.now()),
			PaymentDate:  paymentDate,
		})
		return err
	})
	return created, err
}

// Unenroll removes the client's enrollment in the trip.
// Returns domain.ErrEnrollmentNotFound when there is nothing to remove,
// including on every call after a successful one.
func (s *EnrollmentService) Unenroll(ctx context.Context, clientID, tripID int) error {
	ctx, span := s.tracer.Start(ctx, "EnrollmentService.Unenroll", trace.WithAttributes(
		attribute.Int("client.id", clientID),
		attribute.Int("trip.id", tripID),
	))
	defer span.End()

	if err := s.enrollments.Delete(ctx, clientID, tripID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "unenroll failed")
		}
		return fmt.Errorf("service.EnrollmentService.Unenroll: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementUnenrolled()
	}
	s.log.InfoContext(ctx, "client unenrolled", "client_id", clientID, "trip_id", tripID)
	return nil
}

// ListForClient returns the client's trips, most recent registration first.
// Returns domain.ErrClientNotFound if the client does not exist.
// Always returns a non-nil slice on success.
func (s *EnrollmentService) ListForClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	ok, err := s.clients.Exists(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.EnrollmentService.ListForClient: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("service.EnrollmentService.ListForClient: %w", domain.ErrClientNotFound)
	}

	trips, err := s.enrollments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("service.EnrollmentService.ListForClient: %w", err)
	}
	if trips == nil {
		return []domain.ClientTrip{}, nil
	}
	return trips, nil
}

func (s *EnrollmentService) observeEnroll(err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveEnroll(enrollOutcome(err), start)
}

// enrollOutcome maps an Enroll result to its metric label.
func enrollOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeEnrolled
	case errors.Is(err, domain.ErrClientNotFound):
		return metrics.OutcomeClientNotFound
	case errors.Is(err, domain.ErrTripNotFound):
		return metrics.OutcomeTripNotFound
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return metrics.OutcomeAlreadyEnrolled
	case errors.Is(err, domain.ErrCapacityExceeded):
		return metrics.OutcomeCapacityExceeded
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
