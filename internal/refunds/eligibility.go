package refunds

import "time"

// The cutoff tightens with how early the booking was made: early bookers get
// more notice to cancel, late bookers get a shorter one.
const (
	longLeadThreshold = 7 * 24 * time.Hour
	longLeadCutoff    = 72 * time.Hour
	shortLeadCutoff   = 24 * time.Hour
)

// Eligible decides whether cancelling now earns money back. Bookings placed
// at least seven days before the match must be cancelled more than 72 hours
// ahead of it; bookings placed closer in must be cancelled more than 24 hours
// ahead.
func Eligible(bookedAt, matchAt, now time.Time) bool {
	cutoff := shortLeadCutoff
	if matchAt.Sub(bookedAt) >= longLeadThreshold {
		cutoff = longLeadCutoff
	}
	return now.Before(matchAt.Add(-cutoff))
}
