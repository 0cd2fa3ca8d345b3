package license

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	const threshold = 7

	cases := []struct {
		name     string
		expiry   time.Time
		status   string
		daysLeft int
	}{
		{"expired yesterday", now.AddDate(0, 0, -1), StatusExpired, -1},
		{"expires today", now, StatusAboutToExpire, 0},
		{"expires later today", now.Add(12 * time.Hour), StatusAboutToExpire, 0},
		{"expires at threshold", now.AddDate(0, 0, 7), StatusAboutToExpire, 7},
		{"expires one past threshold", now.AddDate(0, 0, 8), StatusActive, 8},
		{"long expired", now.AddDate(0, 0, -30), StatusExpired, -30},
		{"far out", now.AddDate(1, 0, 0), StatusActive, 365},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, daysLeft := Classify(tc.expiry, now, threshold)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.daysLeft, daysLeft)
		})
	}

	t.Run("midnight expiry seen at noon is already expired", func(t *testing.T) {
		// expiry dates are stored at midnight; once the clock is past
		// that instant the license is expired, not due today
		status, daysLeft := Classify(now, now.Add(12*time.Hour), threshold)
		assert.Equal(t, StatusExpired, status)
		assert.Equal(t, -1, daysLeft)
	})
}
