package core

import (
	"errors"
	"time"
)

const (
	NotPresent Value = iota
	Present
	Mild
	Moderate
	Severe
)

type (
	// Value is the ordinal severity of a day's symptoms. The ordinal
	// position (0..4) doubles as the numeric score used for averaging.
	Value int

	// Date is a calendar day. Only year, month and day are meaningful;
	// the clock component is always midnight local time.
	Date struct {
		time.Time
	}

	// Rating is one day's recorded severity plus optional notes. A nil
	// Value means the day was observed but not rated, which is distinct
	// from no record existing at all.
	Rating struct {
		Date  Date
		Value *Value
		Notes string
	}
)

var ErrUnknownLabel = errors.New("unknown rating label")

var valueLabels = [...]string{
	NotPresent: "Not present",
	Present:    "Present",
	Mild:       "Mild",
	Moderate:   "Moderate",
	Severe:     "Severe",
}

// Values returns the severity values in canonical ascending order.
func Values() []Value {
	return []Value{NotPresent, Present, Mild, Moderate, Severe}
}

// Label returns the human-readable label, e.g. "Not present".
func (v Value) Label() string {
	if v < NotPresent || v > Severe {
		return ""
	}
	return valueLabels[v]
}

// Ptr is a convenience for building optional-valued ratings.
func (v Value) Ptr() *Value {
	return &v
}

// ValueFromLabel resolves a label back to its severity value.
func ValueFromLabel(label string) (Value, bool) {
	for i, l := range valueLabels {
		if l == label {
			return Value(i), true
		}
	}
	return 0, false
}

// NewDate creates a Date from year, month and day in local time.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO 8601 full date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String formats the date as an ISO 8601 full date.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// AddMonths moves the date forward (or backward, for negative n) by
// whole months.
func (d Date) AddMonths(n int) Date {
	t := d.AddDate(0, n, 0)
	return DateOf(t)
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

// Rated reports whether the rating carries a severity value.
func (r Rating) Rated() bool {
	return r.Value != nil
}

// Label returns the severity label, or the empty string when unrated.
func (r Rating) Label() string {
	if r.Value == nil {
		return ""
	}
	return r.Value.Label()
}
