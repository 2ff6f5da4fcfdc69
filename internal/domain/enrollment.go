package domain

import "time"

// Enrollment links one Client to one Trip. The pair (ClientID, TripID) is unique.
type Enrollment struct {
	ClientID     int
	TripID       int
	RegisteredAt CompactDate
	PaymentDate  *CompactDate // nil until paid; only settable at enrollment time
}

// ClientTrip is one row of a client's trip history: the trip summary joined
// with the enrollment metadata.
type ClientTrip struct {
	TripID       int
	Name         string
	Description  *string
	DateFrom     time.Time
	DateTo       time.Time
	RegisteredAt CompactDate
	PaymentDate  *CompactDate
}
