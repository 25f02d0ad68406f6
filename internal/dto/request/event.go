package request

type SeatRequest struct {
	Time     string `json:"time" validate:"required,seattime"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=1000"`
}

// EventRequest is used for both create and full update.
type EventRequest struct {
	Title       string        `json:"title" validate:"required,min=1,max=200"`
	Venues      []string      `json:"venues" validate:"omitempty,dive,required,max=200"`
	Date        string        `json:"date" validate:"required,datetime=2006-01-02"`
	Cost        int           `json:"cost" validate:"min=0"`
	Description string        `json:"description" validate:"max=5000"`
	Seats       []SeatRequest `json:"seats" validate:"required,min=1,dive"`
	CoverImage  string        `json:"cover_image" validate:"omitempty,url"`
	Greeting    string        `json:"greeting" validate:"max=20000"`
}
