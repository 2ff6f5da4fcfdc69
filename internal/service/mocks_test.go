package service_test

import (
	"context"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// Hand-written test doubles. Each method is a function field. Set only the
// ones your test needs; an unset field panics, which flags unexpected calls.

type mockClientRepo struct {
	create  func(ctx context.Context, c domain.Client) (domain.Client, error)
	getByID func(ctx context.Context, id int) (domain.Client, error)
	exists  func(ctx context.Context, id int) (bool, error)
}

func (m *mockClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}
func (m *mockClientRepo) GetByID(ctx context.Context, id int) (domain.Client, error) {
	return m.getByID(ctx, id)
}
func (m *mockClientRepo) Exists(ctx context.Context, id int) (bool, error) {
	return m.exists(ctx, id)
}

type mockTripRepo struct {
	getByID      func(ctx context.Context, id int) (domain.Trip, error)
	listPaged    func(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error)
	exists       func(ctx context.Context, id int) (bool, error)
	capacity     func(ctx context.Context, id int) (int, error)
	lockCapacity func(ctx context.Context, id int) (int, error)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PageParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Exists(ctx context.Context, id int) (bool, error) {
	return m.exists(ctx, id)
}
func (m *mockTripRepo) Capacity(ctx context.Context, id int) (int, error) {
	return m.capacity(ctx, id)
}
func (m *mockTripRepo) LockCapacity(ctx context.Context, id int) (int, error) {
	return m.lockCapacity(ctx, id)
}

type mockEnrollmentRepo struct {
	exists       func(ctx context.Context, clientID, tripID int) (bool, error)
	count        func(ctx context.Context, tripID int) (int, error)
	insert       func(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error)
	delete       func(ctx context.Context, clientID, tripID int) error
	listByClient func(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	return m.exists(ctx, clientID, tripID)
}
func (m *mockEnrollmentRepo) Count(ctx context.Context, tripID int) (int, error) {
	return m.count(ctx, tripID)
}
func (m *mockEnrollmentRepo) Insert(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	return m.insert(ctx, e)
}
func (m *mockEnrollmentRepo) Delete(ctx context.Context, clientID, tripID int) error {
	return m.delete(ctx, clientID, tripID)
}
func (m *mockEnrollmentRepo) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	return m.listByClient(ctx, clientID)
}

// passthroughTx runs the unit of work directly against fixed repos.
type passthroughTx struct {
	repos repo.Repos
	calls int
}

func (p *passthroughTx) WithinTx(_ context.Context, fn func(repo.Repos) error) error {
	p.calls++
	return fn(p.repos)
}

// compile-time checks: the doubles must satisfy the repo interfaces.
var (
	_ repo.ClientRepo     = (*mockClientRepo)(nil)
	_ repo.TripRepo       = (*mockTripRepo)(nil)
	_ repo.EnrollmentRepo = (*mockEnrollmentRepo)(nil)
	_ repo.Transactor     = (*passthroughTx)(nil)
)
