package response

import (
	"time"

	"chakai-booking/internal/data/entity"
)

type SeatResponse struct {
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
	Tentative bool   `json:"tentative"`
}

type EventResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Venues        []string       `json:"venues"`
	Date          string         `json:"date"`
	Cost          int            `json:"cost"`
	Description   string         `json:"description"`
	Seats         []SeatResponse `json:"seats"`
	CoverImage    string         `json:"cover_image,omitempty"`
	Greeting      string         `json:"greeting,omitempty"`
	GreetingHTML  string         `json:"greeting_html,omitempty"`
	Participants  int            `json:"participants"`
	TotalCapacity int            `json:"total_capacity"`
	TotalReserved int            `json:"total_reserved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func EventToResponse(event *entity.Event, greetingHTML string) EventResponse {
	seats := make([]SeatResponse, len(event.Seats))
	for i, seat := range event.Seats {
		seats[i] = SeatResponse{
			Time:      seat.Time,
			Capacity:  seat.Capacity,
			Reserved:  seat.Reserved,
			Available: seat.Available(),
			Tentative: seat.IsTentative(),
		}
	}

	venues := event.Venues
	if venues == nil {
		venues = []string{}
	}

	return EventResponse{
		ID:            event.ID.String(),
		Title:         event.Title,
		Venues:        venues,
		Date:          event.EventDate,
		Cost:          event.Cost,
		Description:   event.Description,
		Seats:         seats,
		CoverImage:    event.CoverImage,
		Greeting:      event.Greeting,
		GreetingHTML:  greetingHTML,
		Participants:  event.Participants,
		TotalCapacity: event.TotalCapacity(),
		TotalReserved: event.TotalReserved(),
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}
}
