package services

import (
	"time"

	"mingle_server/models"
)

// Expiry policy for matches. expiresAt is the single source of truth; the
// stored Active flag is only a cache of this computation and is never read
// back as truth.

// ExpiresAt parses the match's expiry timestamp. A match with a missing or
// unparseable timestamp is treated as already expired.
func ExpiresAt(match models.Match) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, match.ExpiresAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsExpired reports whether the match window has closed. The boundary is
// inclusive: a match exactly at its expiry instant counts as expired.
func IsExpired(match models.Match, now time.Time) bool {
	expiresAt, ok := ExpiresAt(match)
	if !ok {
		return true
	}
	return !now.Before(expiresAt)
}

// RemainingSeconds returns whole seconds until expiry, floored at zero.
func RemainingSeconds(match models.Match, now time.Time) int64 {
	expiresAt, ok := ExpiresAt(match)
	if !ok {
		return 0
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining / time.Second)
}

// InterestExpired reports whether a directional like is past its window.
// Like matches, missing or unparseable timestamps count as expired.
func InterestExpired(interest models.Interest, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, interest.ExpiresAt)
	if err != nil {
		return true
	}
	return !now.Before(t)
}

// IsExpiringSoon reports whether the match is still live but inside the
// countdown-warning threshold.
func IsExpiringSoon(match models.Match, now time.Time, threshold time.Duration) bool {
	if IsExpired(match, now) {
		return false
	}
	expiresAt, _ := ExpiresAt(match)
	return expiresAt.Sub(now) <= threshold
}
