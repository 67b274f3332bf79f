package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingState(t *testing.T) {
	cases := []struct {
		in   string
		want BookingState
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"current", StateCurrent},
		{"Past", StatePast},
		{"FUTURE", StateFuture},
		{"waiting", StateWaiting},
		{"REJECTED", StateRejected},
	}
	for _, tc := range cases {
		got, err := ParseBookingState(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseBookingState("SOMETHING")
	assert.Error(t, err)
}

func TestBookingForItem(t *testing.T) {
	b := &Booking{ID: 7, RenterID: 3}
	got := b.ForItem()
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(3), got.BookerID)
}
