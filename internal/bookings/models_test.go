package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStart(t *testing.T) {
	b := &Booking{Date: "2026-03-02", Slot: "9:30 AM"}

	start, err := b.SlotStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), start)

	evening := &Booking{Date: "2026-03-02", Slot: "9:30 PM"}
	start, err = evening.SlotStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 21, 30, 0, 0, time.UTC), start)
}

func TestExpiredBy(t *testing.T) {
	grace := 5 * time.Minute
	b := &Booking{
		Date:            "2026-03-02",
		Slot:            "9:00 AM",
		SessionDuration: 90,
	}
	// Session runs 9:00-10:30; the expiry deadline is 10:35.
	deadline := time.Date(2026, 3, 2, 10, 35, 0, 0, time.UTC)

	assert.False(t, b.ExpiredBy(deadline.Add(-time.Minute), grace))
	assert.False(t, b.ExpiredBy(deadline, grace)) // exactly at deadline is not past it
	assert.True(t, b.ExpiredBy(deadline.Add(time.Second), grace))
	assert.True(t, b.ExpiredBy(deadline.Add(24*time.Hour), grace))
}

func TestExpiredBy_UnparseableSlot(t *testing.T) {
	b := &Booking{Date: "2026-03-02", Slot: "whenever", SessionDuration: 60}
	assert.False(t, b.ExpiredBy(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0))
}
