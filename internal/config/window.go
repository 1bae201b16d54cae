package config

import (
	"fmt"
	"time"
)

// windowPredicate evaluates a parsed PipelineWindow. Times and the
// location are parsed once at construction; IsUpdateTime does no parsing
// on the hot path.
type windowPredicate struct {
	start    time.Duration // offset from local midnight
	end      time.Duration
	location *time.Location
}

// NewWindowPredicate parses w's start/end times and IANA zone once,
// failing fast on malformed configuration.
func NewWindowPredicate(w PipelineWindow) (*windowPredicate, error) {
	start, err := parseClock(w.UpdateStartTime)
	if err != nil {
		return nil, fmt.Errorf("update_start_time: %w", err)
	}
	end, err := parseClock(w.UpdateEndTime)
	if err != nil {
		return nil, fmt.Errorf("update_end_time: %w", err)
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", w.Timezone, err)
	}
	return &windowPredicate{start: start, end: end, location: loc}, nil
}

func parseClock(hhmm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM: %w", hhmm, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// IsUpdateTime reports whether now, converted to the predicate's zone,
// falls inside the closed [start, end] window. start > end wraps over
// midnight.
func (p *windowPredicate) IsUpdateTime(now time.Time) (bool, error) {
	local := now.In(p.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location)
	sinceMidnight := local.Sub(midnight)

	if p.start <= p.end {
		return sinceMidnight >= p.start && sinceMidnight <= p.end, nil
	}
	return sinceMidnight >= p.start || sinceMidnight <= p.end, nil
}

// IsUpdateTime parses w and evaluates it at now in one call, for call
// sites that don't need to reuse the parsed predicate.
func IsUpdateTime(w PipelineWindow, now time.Time) (bool, error) {
	p, err := NewWindowPredicate(w)
	if err != nil {
		return false, err
	}
	return p.IsUpdateTime(now)
}
