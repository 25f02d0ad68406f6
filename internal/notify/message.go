package notify

import (
	"context"
	"time"
)

const ReservationCreatedType = "reservation.created"

// ReservationCreated is published once a booking has been committed. It
// carries the plain recovery password so the guest can receive it by mail.
type ReservationCreated struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	EventID       string    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     string    `json:"event_date"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Guests        int       `json:"guests"`
	SeatTime      string    `json:"seat_time"`
	Password      string    `json:"password"`
	CreatedAt     time.Time `json:"created_at"`
}

type Publisher interface {
	PublishReservationCreated(ctx context.Context, msg ReservationCreated) error
}

type noopPublisher struct{}

// NewNoopPublisher drops every message. Used when RabbitMQ is disabled.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) PublishReservationCreated(context.Context, ReservationCreated) error {
	return nil
}
