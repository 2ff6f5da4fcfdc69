package domain

import (
	"fmt"
	"time"
)

// CompactDate is a calendar date stored as the integer YYYYMMDD,
// e.g. 20250601 for 1 June 2025. Registration and payment dates use it.
type CompactDate int

// NewCompactDate returns the CompactDate for t's calendar day in t's location.
func NewCompactDate(t time.Time) CompactDate {
	y, m, d := t.Date()
	return CompactDate(y*10000 + int(m)*100 + d)
}

// Time returns midnight UTC of the date.
func (d CompactDate) Time() time.Time {
	v := int(d)
	return time.Date(v/10000, time.Month(v/100%100), v%100, 0, 0, 0, 0, time.UTC)
}

// Validate reports whether d names a real calendar day.
// time.Date normalizes out-of-range values (20250230 → 2 March), so a
// round trip through Time exposes impossible dates.
func (d CompactDate) Validate() error {
	if d < 10000101 || d > 99991231 {
		return fmt.Errorf("%w: date %d must be in YYYYMMDD form", ErrValidation, int(d))
	}
	if NewCompactDate(d.Time()) != d {
		return fmt.Errorf("%w: date %d is not a valid calendar day", ErrValidation, int(d))
	}
	return nil
}

func (d CompactDate) String() string {
	return d.Time().Format("2006-01-02")
}
