package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the envelope for every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateClientRequest is the body of POST /clients.
type CreateClientRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Telephone *string `json:"telephone,omitempty"`
	Pesel     string  `json:"pesel"`
}

// ClientCreated is the body of a successful POST /clients.
type ClientCreated struct {
	ID int `json:"id"`
}

// Client is the JSON representation of a client.
type Client struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Telephone *string `json:"telephone"`
	Pesel     string  `json:"pesel"`
}

// Trip is the JSON representation of a catalog trip.
type Trip struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	DateFrom    openapi_types.Date `json:"date_from"`
	DateTo      openapi_types.Date `json:"date_to"`
	MaxPeople   int                `json:"max_people"`
	Countries   []string           `json:"countries"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ClientTrip is one entry of GET /clients/{id}/trips.
// Dates of registration and payment use the integer YYYYMMDD form.
type ClientTrip struct {
	TripID       int                `json:"trip_id"`
	Name         string             `json:"name"`
	Description  *string            `json:"description"`
	DateFrom     openapi_types.Date `json:"date_from"`
	DateTo       openapi_types.Date `json:"date_to"`
	RegisteredAt int                `json:"registered_at"`
	PaymentDate  *int               `json:"payment_date"`
}

// EnrollRequest is the optional body of PUT /clients/{idClient}/trips/{idTrip}.
type EnrollRequest struct {
	PaymentDate *int `json:"payment_date,omitempty"`
}

// Enrollment is the JSON representation of a created enrollment.
type Enrollment struct {
	ClientID     int  `json:"client_id"`
	TripID       int  `json:"trip_id"`
	RegisteredAt int  `json:"registered_at"`
	PaymentDate  *int `json:"payment_date"`
}

// EnrollResponse is the body of a successful enrollment.
type EnrollResponse struct {
	Message    string     `json:"message"`
	Enrollment Enrollment `json:"enrollment"`
}
