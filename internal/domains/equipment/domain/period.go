package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

var (
	ErrPeriod       = errors.New("invalid period")
	ErrFromIsNull   = fmt.Errorf("%w: start date is required", ErrPeriod)
	ErrToIsNull     = fmt.Errorf("%w: end date is required", ErrPeriod)
	ErrInvalidRange = fmt.Errorf("%w: start date must be before end date", ErrPeriod)
	ErrPastDate     = fmt.Errorf("%w: start date must not be in the past", ErrPeriod)
)

// InvalidRangeError carries the rejected bounds of a period whose start is not before its end.
type InvalidRangeError struct {
	From time.Time
	To   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s (from %s, to %s)", ErrInvalidRange, e.From.Format(DateLayout), e.To.Format(DateLayout))
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// PastDateError carries the rejected start date and the reference day it was checked against.
type PastDateError struct {
	From  time.Time
	Today time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("%s (from %s, today %s)", ErrPastDate, e.From.Format(DateLayout), e.Today.Format(DateLayout))
}

func (e *PastDateError) Unwrap() error { return ErrPastDate }

// Day truncates t to its calendar day. The wall clock date of t is kept and
// re-anchored at midnight UTC so comparisons never depend on a time zone.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Period is an inclusive range of whole days. Two periods sharing an endpoint overlap.
type Period struct {
	from time.Time
	to   time.Time
}

// NewPeriod validates a reservation range against today. A zero time means the bound is missing.
func NewPeriod(from, to, today time.Time) (Period, error) {
	if from.IsZero() {
		return Period{}, ErrFromIsNull
	}
	if to.IsZero() {
		return Period{}, ErrToIsNull
	}
	from, to, today = Day(from), Day(to), Day(today)
	if !from.Before(to) {
		return Period{}, &InvalidRangeError{From: from, To: to}
	}
	if from.Before(today) {
		return Period{}, &PastDateError{From: from, Today: today}
	}
	return Period{from: from, to: to}, nil
}

// RestorePeriod rebuilds a persisted period. Only the range is validated since
// a stored period may legitimately lie in the past.
func RestorePeriod(from, to time.Time) (Period, error) {
	if from.IsZero() {
		return Period{}, ErrFromIsNull
	}
	if to.IsZero() {
		return Period{}, ErrToIsNull
	}
	from, to = Day(from), Day(to)
	if !from.Before(to) {
		return Period{}, &InvalidRangeError{From: from, To: to}
	}
	return Period{from: from, to: to}, nil
}

func (p Period) From() time.Time { return p.from }
func (p Period) To() time.Time   { return p.to }

// IsOngoingOrFuture reports whether the period ends on or after today.
func (p Period) IsOngoingOrFuture(today time.Time) bool {
	return !p.to.Before(Day(today))
}

// Overlaps reports whether both periods share at least one day.
func (p Period) Overlaps(other Period) bool {
	return !p.from.After(other.to) && !p.to.Before(other.from)
}

// Contains reports whether date falls within the period, both ends included.
func (p Period) Contains(date time.Time) bool {
	date = Day(date)
	return !date.Before(p.from) && !date.After(p.to)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s]", p.from.Format(DateLayout), p.to.Format(DateLayout))
}
