package entity

import (
	"time"
)

type Event struct {
	Base
	Title        string   `db:"title"`
	Venues       []string `db:"venues"`
	EventDate    string   `db:"event_date"` // YYYY-MM-DD
	Cost         int      `db:"cost"`
	Description  string   `db:"description"`
	Seats        []Seat   `db:"seats"`
	CoverImage   string   `db:"cover_image"`
	Greeting     string   `db:"greeting"` // Markdown
	Participants int      `db:"participants"`
}

// FindSeat returns the index of the seat with the given time label, or -1.
func (e *Event) FindSeat(seatTime string) int {
	for i, seat := range e.Seats {
		if seat.Time == seatTime {
			return i
		}
	}
	return -1
}

func (e *Event) TotalReserved() int {
	total := 0
	for _, seat := range e.Seats {
		total += seat.Reserved
	}
	return total
}

func (e *Event) TotalCapacity() int {
	total := 0
	for _, seat := range e.Seats {
		total += seat.Capacity
	}
	return total
}

// IsPast reports whether the event date lies before the day of now.
func (e *Event) IsPast(now time.Time) bool {
	date, err := time.ParseInLocation("2006-01-02", e.EventDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(today)
}
