package models

import (
	dErrors "flock/pkg/domain-errors"
)

// Status is the canonical three-value disposition of a registration.
//
// Home-group and serving surfaces say "approved" where event surfaces say
// "confirmed"; that vocabulary lives in the domain descriptors. The core
// stores and compares only these three values.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
)

// Statuses lists every legal value, in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusDeclined}
}

// IsValid checks if the status is one of the three legal values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined:
		return true
	}
	return false
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// ParseStatus creates a Status from its canonical spelling. Domain-specific
// synonyms ("approved") are mapped before this point by the domain descriptor.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status: must be 'pending', 'confirmed' or 'declined'")
	}
	return s, nil
}
