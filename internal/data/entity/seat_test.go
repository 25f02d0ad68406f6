package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func labels(seats []Seat) []string {
	out := make([]string, len(seats))
	for i, seat := range seats {
		out[i] = seat.Time
	}
	return out
}

func TestSortSeats(t *testing.T) {
	seats := []Seat{{Time: "10:00"}, {Time: TentativeSeatLabel}, {Time: "08:30"}}
	SortSeats(seats)
	assert.Equal(t, []string{"08:30", "10:00", TentativeSeatLabel}, labels(seats))

	seats = []Seat{{Time: TentativeSeatLabel}, {Time: "13:00"}, {Time: "09:15"}, {Time: "09:00"}}
	SortSeats(seats)
	assert.Equal(t, []string{"09:00", "09:15", "13:00", TentativeSeatLabel}, labels(seats))
}

func TestSeatAvailable(t *testing.T) {
	assert.Equal(t, 3, Seat{Capacity: 5, Reserved: 2}.Available())
	assert.Equal(t, 0, Seat{Capacity: 2, Reserved: 2}.Available())
	// drifted data never reports negative availability
	assert.Equal(t, 0, Seat{Capacity: 2, Reserved: 4}.Available())
}

func TestApplyLedger(t *testing.T) {
	legacy := 4
	seats := []Seat{
		{Time: "09:00", Capacity: 5, Reserved: 1},
		{Time: "11:00", Capacity: 5, Reserved: 3},
		{Time: TentativeSeatLabel, Capacity: 2},
	}
	reservations := []*Reservation{
		{SeatTime: "09:00", Guests: 2},
		{SeatTime: "09:00", Guests: 1, NumberOfParticipants: &legacy},
		{SeatTime: TentativeSeatLabel, Guests: 2},
		{SeatTime: "17:00", Guests: 1},
	}

	out, participants := ApplyLedger(seats, reservations)

	assert.Equal(t, []Seat{
		{Time: "09:00", Capacity: 5, Reserved: 3},
		{Time: "11:00", Capacity: 5, Reserved: 0},
		{Time: TentativeSeatLabel, Capacity: 2, Reserved: 2},
	}, out)
	assert.Equal(t, 2+4+2+1, participants)
	// the input slice is left alone
	assert.Equal(t, 1, seats[0].Reserved)

	again, _ := ApplyLedger(out, reservations)
	assert.Equal(t, out, again)
}

func TestEventHelpers(t *testing.T) {
	event := &Event{
		EventDate: "2026-03-01",
		Seats: []Seat{
			{Time: "09:00", Capacity: 4, Reserved: 1},
			{Time: "11:00", Capacity: 6, Reserved: 6},
		},
	}

	assert.Equal(t, 1, event.FindSeat("11:00"))
	assert.Equal(t, -1, event.FindSeat("12:00"))
	assert.Equal(t, 10, event.TotalCapacity())
	assert.Equal(t, 7, event.TotalReserved())

	jst := time.FixedZone("JST", 9*60*60)
	assert.False(t, event.IsPast(time.Date(2026, 3, 1, 23, 0, 0, 0, jst)))
	assert.True(t, event.IsPast(time.Date(2026, 3, 2, 0, 5, 0, 0, jst)))
}

func TestSplitEmails(t *testing.T) {
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, SplitEmails(" a@example.com,, b@example.com ,"))
	assert.Nil(t, SplitEmails(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "guest@example.com", NormalizeEmail("  Guest@Example.COM "))
}
