package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation row
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a bay booking for a single day as stored in the database
type Reservation struct {
	ID     int64
	Date   time.Time
	Bay    int
	Status ReservationStatus

	// Raw time-of-day values as stored ("HH:MM" or "HH:MM:SS").
	// Parsed during layout so that one malformed row does not fail the whole fetch.
	StartTime string
	EndTime   string

	MemberID   *int64 // nil for walk-in customers
	MemberName string
	Category   Category

	// BalanceAfter is the most recent known credit balance of the member.
	// Filled after the balance lookup; nil when unknown.
	BalanceAfter *int64
}

// HasMember returns true if the reservation belongs to a registered member
func (r *Reservation) HasMember() bool {
	return r.MemberID != nil
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}
