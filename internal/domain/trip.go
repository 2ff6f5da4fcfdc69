// Package domain contains the core data types for the Travel Agency API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip is a catalog entry clients can enroll in.
// Trips are read-only from this service's point of view; catalog management
// happens elsewhere.
type Trip struct {
	ID          int
	Name        string
	Description *string // nil when the catalog has no description
	DateFrom    time.Time
	DateTo      time.Time
	MaxPeople   int
	Countries   []string // country names, ordered alphabetically
}
