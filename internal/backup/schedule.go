package backup

import (
	"fmt"
	"time"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Schedule describes a recurring backup. NextRun is recomputed every time
// the schedule fires; nothing here starts a timer.
type Schedule struct {
	Frequency string    `json:"frequency"`
	Time      string    `json:"time"` // "HH:MM", local clock
	Enabled   bool      `json:"enabled"`
	NextRun   time.Time `json:"nextRun"`
	LastRun   time.Time `json:"lastRun"`
}

// ComputeNextRun returns the first instant at or after now matching the
// schedule's HH:MM. If today's slot has already passed, the run moves to the
// next day/week/month.
func (s *Schedule) ComputeNextRun(now time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", s.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q: %w", s.Time, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())

	if !next.After(now) {
		switch s.Frequency {
		case FrequencyDaily:
			next = next.AddDate(0, 0, 1)
		case FrequencyWeekly:
			next = next.AddDate(0, 0, 7)
		case FrequencyMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			return time.Time{}, fmt.Errorf("invalid schedule frequency %q", s.Frequency)
		}
	}
	return next, nil
}

// Due reports whether the schedule should fire at now.
func (s *Schedule) Due(now time.Time) bool {
	return s.Enabled && !s.NextRun.IsZero() && !now.Before(s.NextRun)
}

// MarkFired records a run and advances NextRun past now.
func (s *Schedule) MarkFired(now time.Time) error {
	s.LastRun = now
	// Advance from just after now so a slot equal to now rolls forward.
	next, err := s.ComputeNextRun(now.Add(time.Minute))
	if err != nil {
		return err
	}
	s.NextRun = next
	return nil
}
