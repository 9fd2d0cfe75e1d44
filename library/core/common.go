package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// UserIDString represents a user identifier (the code loans reference, not the login).
type UserIDString = string

// BookIDString represents a book identifier.
type BookIDString = string

// LoanIDString represents a loan identifier.
type LoanIDString = string

// LoginString represents a login handle.
type LoginString = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// DateLayout is the ISO-8601 calendar date layout used for all loan dates.
const DateLayout = "2006-01-02"

const hoursPerDay = 24

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDate drops the time-of-day component.
// The calendar date is taken in t's own location and returned as midnight UTC,
// so that dates from different sources compare and subtract cleanly.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date the given number of calendar days after d.
func AddDays(d time.Time, days int) time.Time {
	return ToDate(d).AddDate(0, 0, days)
}

// DaysBetween returns the number of whole calendar days from "from" to "to".
// The result is negative if "to" lies before "from".
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / hoursPerDay)
}

// FormatDate renders a date in DateLayout.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
