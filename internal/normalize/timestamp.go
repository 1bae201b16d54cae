package normalize

import (
	"time"

	"github.com/aristath/marketdata/internal/domain"
)

// invalidDate is returned for (seconds, nanos) pairs outside the range the
// standard library can represent as a time.Time.
const invalidDate = "Invalid date"

// FromTimestamp converts a (seconds, nanos) pair to its domain rendering.
// The seconds/nanos are carried through unchanged; nanos beyond the
// brokerage's 1-second display precision are dropped from ISO (matching
// the source's display-only use of seconds).
func FromTimestamp(seconds int64, nanos int32) domain.Timestamp {
	t := time.Unix(seconds, 0).UTC()
	iso := invalidDate
	if year := t.Year(); year >= 1 && year <= 9999 {
		iso = t.Format("2006-01-02T15:04:05Z")
	}
	return domain.Timestamp{Seconds: seconds, Nanos: nanos, ISO: iso}
}

// moscowOffset is the fixed UTC+3 offset used for candle display timestamps,
// matching the historical backfill's display_time rendering (no DST in
// Russia since 2014, so a fixed offset is sufficient and matches the source).
const moscowOffset = 3 * time.Hour

// MoscowDisplayTime renders a UTC instant as a Moscow-local
// "YYYY-MM-DD HH:MM:SS" string, used for historical candle display_time.
func MoscowDisplayTime(seconds int64) string {
	t := time.Unix(seconds, 0).UTC().Add(moscowOffset)
	return t.Format("2006-01-02 15:04:05")
}

