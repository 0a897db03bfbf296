package bookings

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingRef(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^CRT-20260302-[A-Z0-9]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		ref := GenerateBookingRef(now)
		assert.Regexp(t, pattern, ref)
		seen[ref] = struct{}{}
	}
	// 50 draws from a 36^6 space colliding down to a handful would mean the
	// randomness is broken.
	assert.Greater(t, len(seen), 45)
}
