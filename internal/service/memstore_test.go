package service_test

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

type pair struct{ clientID, tripID int }

// memStore is an in-memory stand-in for Postgres that behaves like a
// database with serializable transactions: WithinTx holds txMu for the whole
// unit of work and restores the enrollment table if fn fails. Single-statement
// calls made outside WithinTx take only mu, like autocommit statements.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	clients     map[int]bool
	trips       map[int]domain.Trip
	enrollments map[pair]domain.Enrollment
}

func newMemStore() *memStore {
	return &memStore{
		clients:     map[int]bool{},
		trips:       map[int]domain.Trip{},
		enrollments: map[pair]domain.Enrollment{},
	}
}

func (s *memStore) addClient(id int) { s.clients[id] = true }

func (s *memStore) addTrip(id, maxPeople int) {
	s.trips[id] = domain.Trip{ID: id, Name: "Trip", MaxPeople: maxPeople}
}

func (s *memStore) enrollmentCount(tripID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.enrollments {
		if k.tripID == tripID {
			n++
		}
	}
	return n
}

func (s *memStore) repos() repo.Repos {
	return repo.Repos{
		Clients:     memClients{s},
		Trips:       memTrips{s},
		Enrollments: memEnrollments{s},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(repo.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[pair]domain.Enrollment, len(s.enrollments))
	for k, v := range s.enrollments {
		snapshot[k] = v
	}
	s.mu.Unlock()

	err := fn(s.repos())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.enrollments = snapshot
		s.mu.Unlock()
	}
	return err
}

type memClients struct{ s *memStore }

func (m memClients) Create(context.Context, domain.Client) (domain.Client, error) {
	panic("not used")
}
func (m memClients) GetByID(context.Context, int) (domain.Client, error) {
	panic("not used")
}
func (m memClients) Exists(_ context.Context, id int) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.clients[id], nil
}

type memTrips struct{ s *memStore }

func (m memTrips) GetByID(context.Context, int) (domain.Trip, error) { panic("not used") }
func (m memTrips) ListPaged(context.Context, domain.PageParams) ([]domain.Trip, int64, error) {
	panic("not used")
}
func (m memTrips) Exists(_ context.Context, id int) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	_, ok := m.s.trips[id]
	return ok, nil
}
func (m memTrips) Capacity(_ context.Context, id int) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.trips[id]
	if !ok {
		return 0, domain.ErrTripNotFound
	}
	return t.MaxPeople, nil
}

// LockCapacity needs no extra locking here: WithinTx already serializes.
func (m memTrips) LockCapacity(ctx context.Context, id int) (int, error) {
	return m.Capacity(ctx, id)
}

type memEnrollments struct{ s *memStore }

func (m memEnrollments) Exists(_ context.Context, clientID, tripID int) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	_, ok := m.s.enrollments[pair{clientID, tripID}]
	return ok, nil
}

// Count yields before returning so an unserialized check-then-insert would
// interleave with other goroutines and overbook the trip.
func (m memEnrollments) Count(_ context.Context, tripID int) (int, error) {
	n := m.s.enrollmentCount(tripID)
	runtime.Gosched()
	return n, nil
}

func (m memEnrollments) Insert(_ context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	k := pair{e.ClientID, e.TripID}
	if _, ok := m.s.enrollments[k]; ok {
		return domain.Enrollment{}, domain.ErrAlreadyEnrolled
	}
	m.s.enrollments[k] = e
	return e, nil
}

func (m memEnrollments) Delete(_ context.Context, clientID, tripID int) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	k := pair{clientID, tripID}
	if _, ok := m.s.enrollments[k]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	delete(m.s.enrollments, k)
	return nil
}

func (m memEnrollments) ListByClient(_ context.Context, clientID int) ([]domain.ClientTrip, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []domain.ClientTrip{}
	for k, e := range m.s.enrollments {
		if k.clientID != clientID {
			continue
		}
		t := m.s.trips[k.tripID]
		out = append(out, domain.ClientTrip{
			TripID:       t.ID,
			Name:         t.Name,
			RegisteredAt: e.RegisteredAt,
			PaymentDate:  e.PaymentDate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RegisteredAt > out[j].RegisteredAt })
	return out, nil
}
