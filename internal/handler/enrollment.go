package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-agency/internal/domain"
)

const enrolledMessage = "Client successfully registered for the trip"

// EnrollClient handles PUT /clients/{idClient}/trips/{idTrip}.
// The body is optional; when present it may carry payment_date as YYYYMMDD.
func (s *Server) EnrollClient(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := enrollmentPath(w, r)
	if !ok {
		return
	}

	var body EnrollRequest
	if !decodeJSON(w, r, &body, true) {
		return
	}
	var paymentDate *domain.CompactDate
	if body.PaymentDate != nil {
		d := domain.CompactDate(*body.PaymentDate)
		paymentDate = &d
	}

	e, err := s.enrollments.Enroll(r.Context(), clientID, tripID, paymentDate)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EnrollResponse{
		Message:    enrolledMessage,
		Enrollment: enrollmentToResponse(e),
	})
}

// UnenrollClient handles DELETE /clients/{idClient}/trips/{idTrip}.
func (s *Server) UnenrollClient(w http.ResponseWriter, r *http.Request) {
	clientID, tripID, ok := enrollmentPath(w, r)
	if !ok {
		return
	}

	if err := s.enrollments.Unenroll(r.Context(), clientID, tripID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListClientTrips handles GET /clients/{id}/trips.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ListClientTrips(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	trips, err := s.enrollments.ListForClient(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		writeClientTripsCSV(w, id, trips)
		return
	}

	out := make([]ClientTrip, len(trips))
	for i, ct := range trips {
		out[i] = clientTripToResponse(ct)
	}
	writeJSON(w, http.StatusOK, out)
}

func enrollmentPath(w http.ResponseWriter, r *http.Request) (clientID, tripID int, ok bool) {
	clientID, err := pathInt(r, "idClient")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return 0, 0, false
	}
	tripID, err = pathInt(r, "idTrip")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return 0, 0, false
	}
	return clientID, tripID, true
}

func compactDatePtr(d *domain.CompactDate) *int {
	if d == nil {
		return nil
	}
	v := int(*d)
	return &v
}

func enrollmentToResponse(e domain.Enrollment) Enrollment {
	return Enrollment{
		ClientID:     e.ClientID,
		TripID:       e.TripID,
		RegisteredAt: int(e.RegisteredAt),
		PaymentDate:  compactDatePtr(e.PaymentDate),
	}
}

func clientTripToResponse(ct domain.ClientTrip) ClientTrip {
	return ClientTrip{
		TripID:       ct.TripID,
		Name:         ct.Name,
		Description:  ct.Description,
		DateFrom:     openapi_types.Date{Time: ct.DateFrom},
		DateTo:       openapi_types.Date{Time: ct.DateTo},
		RegisteredAt: int(ct.RegisteredAt),
		PaymentDate:  compactDatePtr(ct.PaymentDate),
	}
}
