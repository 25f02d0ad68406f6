package entity

import (
	"strings"

	"github.com/google/uuid"
)

type Reservation struct {
	BaseNoDelete
	EventID  uuid.UUID `db:"event_id"`
	Name     string    `db:"name"`
	Email    string    `db:"email"`
	Guests   int       `db:"guests"`
	SeatTime string    `db:"seat_time"`
	// NumberOfParticipants is the legacy head count some older bookings
	// carry instead of relying on Guests.
	NumberOfParticipants *int   `db:"number_of_participants"`
	PasswordHash         string `db:"password_hash"`
}

// ParticipantCount is what the legacy aggregate counts for this booking.
func (r *Reservation) ParticipantCount() int {
	if r.NumberOfParticipants != nil {
		return *r.NumberOfParticipants
	}
	return r.Guests
}

// NormalizeEmail is the form used for the (event, email) uniqueness check.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
