package license

import (
	"time"

	"github.com/louatizine/erp/internal/shared/datemath"
)

// Classify buckets a license by how far its expiry lies from now.
// Anything already past is expired; anything within thresholdDays
// (inclusive, including today) is about to expire; the rest is active.
// The returned day count is the truncating difference, negative once
// the expiry has passed.
func Classify(expiry, now time.Time, thresholdDays int) (string, int) {
	daysLeft := datemath.DaysUntil(now, expiry)
	switch {
	case daysLeft < 0:
		return StatusExpired, daysLeft
	case daysLeft <= thresholdDays:
		return StatusAboutToExpire, daysLeft
	default:
		return StatusActive, daysLeft
	}
}
