package entity

import "sort"

// TentativeSeatLabel marks a slot with no fixed time yet; it always sorts last.
const TentativeSeatLabel = "仮予約"

// Seat is a bookable time slot embedded in an Event. Reserved is derived
// from the event's reservations and is never edited directly by admins.
type Seat struct {
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
	Reserved int    `json:"reserved"`
}

func (s Seat) IsTentative() bool {
	return s.Time == TentativeSeatLabel
}

func (s Seat) Available() int {
	if s.Reserved >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Reserved
}

// SortSeats orders clock-time slots ascending ("HH:MM" compares
// lexicographically) with the tentative slot after all of them.
func SortSeats(seats []Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if a.IsTentative() != b.IsTentative() {
			return !a.IsTentative()
		}
		return a.Time < b.Time
	})
}

// SeatTotals sums guests per seat time label.
func SeatTotals(reservations []*Reservation) map[string]int {
	totals := make(map[string]int)
	for _, r := range reservations {
		totals[r.SeatTime] += r.Guests
	}
	return totals
}

// ApplyLedger returns a copy of seats with Reserved taken from the given
// reservations (0 for labels nobody booked), plus the legacy participant
// aggregate. Reservations pointing at labels the event no longer has count
// towards the aggregate only.
func ApplyLedger(seats []Seat, reservations []*Reservation) ([]Seat, int) {
	totals := SeatTotals(reservations)

	out := make([]Seat, len(seats))
	for i, seat := range seats {
		seat.Reserved = totals[seat.Time]
		out[i] = seat
	}

	participants := 0
	for _, r := range reservations {
		participants += r.ParticipantCount()
	}

	return out, participants
}
