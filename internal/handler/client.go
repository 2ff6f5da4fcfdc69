package handler

import (
	"fmt"
	"net/http"

	"github.com/pkordes/travel-agency/internal/domain"
)

// CreateClient handles POST /clients.
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var body CreateClientRequest
	if !decodeJSON(w, r, &body, false) {
		return
	}

	created, err := s.clients.Create(r.Context(), requestToClient(body))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/clients/%d", created.ID))
	writeJSON(w, http.StatusCreated, ClientCreated{ID: created.ID})
}

// GetClient handles GET /clients/{id}.
func (s *Server) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	client, err := s.clients.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clientToResponse(client))
}

func requestToClient(body CreateClientRequest) domain.Client {
	return domain.Client{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Telephone: body.Telephone,
		Pesel:     body.Pesel,
	}
}

func clientToResponse(c domain.Client) Client {
	return Client{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Telephone: c.Telephone,
		Pesel:     c.Pesel,
	}
}
