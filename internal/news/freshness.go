package news

import (
	"time"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// ApplicableCutoff computes the most recent daily cutoff instant relative to
// now: today's cutoff when now is at or past it, otherwise yesterday's.
func ApplicableCutoff(now time.Time, cutoffHour int) time.Time {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), cutoffHour, 0, 0, 0, now.Location())
	if now.Before(cutoff) {
		cutoff = cutoff.AddDate(0, 0, -1)
	}
	return cutoff
}

// IsFresh reports whether the persisted snapshot can be served without a
// network call: fetched at or after the applicable cutoff and holding at
// least minItems entries. Pure; trusts the local clock, no skew compensation.
func IsFresh(cached *models.NewsCache, now time.Time, cutoffHour, minItems int) bool {
	if cached == nil || cached.FetchedAt.IsZero() {
		return false
	}
	if len(cached.Items) < minItems {
		return false
	}
	return !cached.FetchedAt.Before(ApplicableCutoff(now, cutoffHour))
}
