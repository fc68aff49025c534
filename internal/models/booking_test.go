package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingPending, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCompleted, BookingConfirmed, false},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.from}
		assert.Equal(t, tc.allowed, b.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingIsTerminal(t *testing.T) {
	assert.False(t, Booking{Status: BookingPending}.IsTerminal())
	assert.False(t, Booking{Status: BookingConfirmed}.IsTerminal())
	assert.True(t, Booking{Status: BookingCancelled}.IsTerminal())
	assert.True(t, Booking{Status: BookingCompleted}.IsTerminal())
}

func TestBookingBothRated(t *testing.T) {
	five, four := 5, 4

	assert.False(t, Booking{}.BothRated())
	assert.False(t, Booking{InstructorRating: &five}.BothRated())
	assert.False(t, Booking{StudentRating: &four}.BothRated())
	assert.True(t, Booking{InstructorRating: &five, StudentRating: &four}.BothRated())
}
