package journal

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time component. It is stored as midnight
// UTC so day arithmetic is exact regardless of the local zone.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today is the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate accepts YYYY-MM-DD, and RFC3339 timestamps from older exports.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err == nil {
		return Date{t: t}, nil
	}
	if ts, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return DateOf(ts), nil
	}
	return Date{}, fmt.Errorf("parse date %q: %w", s, err)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Time is midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysSince is the number of whole days from o to d; negative if d is earlier.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
