// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. Business timezone is only used for
// calculating date boundaries (start/end of day, month).
//
// Design principles:
// - All time storage is in UTC
// - Metric windows must explicitly specify business timezone boundaries
// - Day/month statistics must calculate business timezone boundaries first, then convert to UTC for queries
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone. Metric windows are
	// specified in UTC unless a deployment configures otherwise.
	DefaultTimezone = "UTC"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location.
// If not explicitly initialized, automatically initializes with the default timezone (UTC).
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone, converted to UTC.
// This is for database queries where we need to find records from the start of a business day.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// EndOfDayUTC returns the start of the next day in business timezone, converted
// to UTC. Query windows are half-open: [StartOfDayUTC, EndOfDayUTC).
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24 * time.Hour)
}

// StartOfMonthUTC returns the start of month in business timezone, converted to UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, Location())
	return startOfMonth.UTC()
}

// EndOfMonthUTC returns the start of the next month in business timezone,
// converted to UTC. Query windows are half-open: [StartOfMonthUTC, EndOfMonthUTC).
func EndOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).AddDate(0, 1, 0).UTC()
}

// MonthOf normalizes a time to the first day of its calendar month in
// business timezone, converted to UTC.
func MonthOf(t time.Time) time.Time {
	bizTime := t.In(Location())
	return StartOfMonthUTC(bizTime.Year(), bizTime.Month())
}

// MonthsBetween returns the consecutive sequence of month starts from the
// month containing `from` through the month containing `until`, inclusive.
// Returns nil when `until` precedes `from`'s month.
func MonthsBetween(from, until time.Time) []time.Time {
	start := MonthOf(from)
	end := MonthOf(until)
	if end.Before(start) {
		return nil
	}

	var months []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// PreviousMonth returns the first day of the month before the month
// containing t, in business timezone converted to UTC. This is the most
// recent fully elapsed month when t is "now".
func PreviousMonth(t time.Time) time.Time {
	return MonthOf(t).AddDate(0, -1, 0)
}

// ToBizTimezone converts a UTC time to business timezone for display.
// Use this only when you need to display time to users.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// ParseDateInBizTimezone parses a date string (YYYY-MM-DD) as business timezone midnight,
// then returns the UTC equivalent.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatInBizTimezone formats a UTC time as a string in business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
