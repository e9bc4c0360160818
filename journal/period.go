package journal

import (
	"fmt"
	"time"
)

type PeriodKind int

const (
	AllTimeKind PeriodKind = iota
	DayKind
	WeekKind
)

// Period selects entries by date. Start and End are inclusive. The caller
// owns the current selection and passes it in; nothing here keeps a cursor.
type Period struct {
	Kind  PeriodKind
	Start Date
	End   Date
}

func AllTime() Period { return Period{Kind: AllTimeKind} }

func Day(d Date) Period { return Period{Kind: DayKind, Start: d, End: d} }

// Week is the Monday-to-Sunday week containing d.
func Week(d Date) Period {
	mon, sun := WeekBounds(d)
	return Period{Kind: WeekKind, Start: mon, End: sun}
}

// ThisWeek and TodayPeriod use the local calendar at now.
func ThisWeek(now time.Time) Period   { return Week(DateOf(now)) }
func TodayPeriod(now time.Time) Period { return Day(DateOf(now)) }

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d Date) (monday, sunday Date) {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the week that started six days earlier
	}
	monday = d.AddDays(-offset)
	return monday, monday.AddDays(6)
}

func (p Period) Contains(d Date) bool {
	if p.Kind == AllTimeKind {
		return true
	}
	return !d.Before(p.Start) && !d.After(p.End)
}

// Shift moves a day or week selection n steps; all-time is unchanged.
func (p Period) Shift(n int) Period {
	switch p.Kind {
	case DayKind:
		return Day(p.Start.AddDays(n))
	case WeekKind:
		return Week(p.Start.AddDays(7 * n))
	}
	return p
}

func (p Period) String() string {
	switch p.Kind {
	case DayKind:
		return p.Start.String()
	case WeekKind:
		return fmt.Sprintf("%s – %s", p.Start.Time().Format("Jan 2"), p.End.Time().Format("Jan 2"))
	}
	return "All Time"
}

// Filter returns the entries whose date falls in p, in input order.
func Filter(entries []Entry, p Period) []Entry {
	if p.Kind == AllTimeKind {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
