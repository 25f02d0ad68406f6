package response

import (
	"time"

	"chakai-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID                   string    `json:"id"`
	EventID              string    `json:"event_id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Guests               int       `json:"guests"`
	SeatTime             string    `json:"seat_time"`
	NumberOfParticipants *int      `json:"number_of_participants,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func ReservationToResponse(reservation *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                   reservation.ID.String(),
		EventID:              reservation.EventID.String(),
		Name:                 reservation.Name,
		Email:                reservation.Email,
		Guests:               reservation.Guests,
		SeatTime:             reservation.SeatTime,
		NumberOfParticipants: reservation.NumberOfParticipants,
		CreatedAt:            reservation.CreatedAt,
		UpdatedAt:            reservation.UpdatedAt,
	}
}

// ReservationCreatedResponse carries the recovery password; it is the only
// time the plain value leaves the server over HTTP.
type ReservationCreatedResponse struct {
	ReservationID string `json:"reservation_id"`
	Password      string `json:"password"`
}

type LookupItem struct {
	Reservation ReservationResponse `json:"reservation"`
	EventTitle  string              `json:"event_title"`
	EventDate   string              `json:"event_date"`
	Token       string              `json:"token"`
	ExpiresAt   time.Time           `json:"expires_at"`
}

type LookupResponse struct {
	Reservations []LookupItem `json:"reservations"`
}
