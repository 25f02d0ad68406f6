package usecase

import (
	"errors"
	"fmt"

	"chakai-booking/pkg/utils"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatNotFound        = errors.New("seat time not found for event")
	ErrPostNotFound        = errors.New("post not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrDuplicateBooking    = errors.New("a reservation for this email already exists for the event")
	ErrCapacityExceeded    = errors.New("seat capacity exceeded")
	ErrSeatInUse           = errors.New("seat still has reservations")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
)

// ValidationError carries per-field messages back to the caller.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

// CapacityExceededError reports the seat state that made a booking fail.
// It matches ErrCapacityExceeded under errors.Is.
type CapacityExceededError struct {
	SeatTime  string
	Capacity  int
	Reserved  int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("seat %s: capacity %d, already reserved %d, requested %d",
		e.SeatTime, e.Capacity, e.Reserved, e.Requested)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Attempted is the total the seat would have held had the booking gone through.
func (e *CapacityExceededError) Attempted() int {
	return e.Reserved + e.Requested
}
