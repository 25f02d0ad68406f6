package request

type CreateReservationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Guests   int    `json:"guests" validate:"required,min=1,max=100"`
	SeatTime string `json:"seat_time" validate:"required,seattime"`
}

// UpdateReservationRequest changes only the fields that are present.
type UpdateReservationRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Guests   *int    `json:"guests,omitempty" validate:"omitempty,min=1,max=100"`
	SeatTime *string `json:"seat_time,omitempty" validate:"omitempty,seattime"`
}

func (r UpdateReservationRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Guests == nil && r.SeatTime == nil
}

type LookupReservationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=64"`
}

// AdminCreateReservationRequest books on behalf of a guest; the same rules
// as a public booking apply.
type AdminCreateReservationRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
	CreateReservationRequest
}
