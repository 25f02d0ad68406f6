package utils

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	staffKey ctxKey = iota
	reservationKey
)

// Staff is the back-office principal attached by the session middleware.
// Role stays empty until the admin check has loaded the account.
type Staff struct {
	UserID uuid.UUID
	Role   string
	Token  string
}

func WithStaff(ctx context.Context, staff Staff) context.Context {
	return context.WithValue(ctx, staffKey, staff)
}

func StaffFromContext(ctx context.Context) (Staff, bool) {
	staff, ok := ctx.Value(staffKey).(Staff)
	if !ok || staff.UserID == uuid.Nil {
		return Staff{}, false
	}
	return staff, true
}

// WithReservation marks the request as carrying a self-service token for reservationID.
func WithReservation(ctx context.Context, reservationID string) context.Context {
	return context.WithValue(ctx, reservationKey, reservationID)
}

func ReservationFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(reservationKey).(string)
	return id, ok && id != ""
}
