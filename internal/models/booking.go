package models

import "errors"

// Booking statuses. A booking carries exactly one current status; prior
// statuses are not retained.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// ErrNotFound is returned when a booking id does not exist in the store.
var ErrNotFound = errors.New("booking not found")

type Booking struct {
	ID              string `json:"id"`
	PackageType     string `json:"packageType"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	NumHunters      int    `json:"numHunters"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

// ValidStatus reports whether s is one of the three allowed booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}
