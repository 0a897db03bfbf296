package bookings

import (
	"crypto/rand"
	"fmt"
	"time"
)

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingRef produces a human-readable reference like
// CRT-20260115-4K7Q2N. References are what payment webhooks and support
// tickets quote, so they stay short and unambiguous.
func GenerateBookingRef(now time.Time) string {
	suffix := make([]byte, 6)
	random := make([]byte, 6)
	if _, err := rand.Read(random); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a timestamp-derived suffix rather than panic.
		for i := range suffix {
			suffix[i] = refCharset[(now.UnixNano()>>(i*5))%int64(len(refCharset))]
		}
		return fmt.Sprintf("CRT-%s-%s", now.Format("20060102"), string(suffix))
	}
	for i, b := range random {
		suffix[i] = refCharset[int(b)%len(refCharset)]
	}
	return fmt.Sprintf("CRT-%s-%s", now.Format("20060102"), string(suffix))
}
