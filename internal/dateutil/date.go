package dateutil

import (
	"time"
)

const isoLayout = "2006-01-02"

// Date is an immutable calendar date with day precision. All arithmetic
// returns new values, so period calculations can never corrupt a shared date
// the way mutable date objects do.
type Date struct {
	t time.Time
}

// New builds a date from its components. Out-of-range components normalize
// the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time to its UTC calendar date.
func FromTime(t time.Time) Date {
	u := t.UTC()
	return New(u.Year(), u.Month(), u.Day())
}

// Parse reads an ISO date string. Inputs longer than ten characters (for
// example full timestamps) are truncated to their date prefix first.
func Parse(s string) (Date, bool) {
	if len(s) > len(isoLayout) {
		s = s[:len(isoLayout)]
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return Date{}, false
	}
	return Date{t: t}, true
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String renders the date as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(isoLayout) }

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of month.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date shifted by n days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// AddMonths returns the date shifted by n months.
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both values name the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysSince returns the number of days from other to d. Negative when other
// is later.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}
