// Package reconcile compares the trade log against a saved projection by
// mapping elapsed calendar weeks onto the projected schedule.
package reconcile

import (
	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/projection"
)

const daysPerWeek = 7

type Comparison struct {
	ActualCapital    float64
	ProjectedCapital float64
	Delta            float64
	OnTrack          bool

	// WeeksElapsed is the schedule index that ProjectedCapital came from.
	// Past the end of the plan it keeps counting while ProjectedCapital
	// stays at FinalCapital.
	WeeksElapsed  int
	PlanExhausted bool
}

// WeeksElapsed is floor((latest - earliest) / 7 days) over the entry dates.
func WeeksElapsed(entries []journal.Entry) int {
	first, last, ok := journal.Span(entries)
	if !ok {
		return 0
	}
	return max(0, last.DaysSince(first)/daysPerWeek)
}

// Compare sets actual capital (starting capital plus every logged result)
// against the projected capital at the end of the elapsed week. Once the
// elapsed weeks pass the plan, the projection stays flat at FinalCapital.
//
// ok is false when there are no entries or the result has no weeks.
func Compare(p projection.Params, res projection.Result, entries []journal.Entry) (c Comparison, ok bool) {
	if len(entries) == 0 || len(res.Weeks) == 0 {
		return Comparison{}, false
	}

	c.ActualCapital = p.Capital + journal.NetTotal(entries)
	c.WeeksElapsed = WeeksElapsed(entries)

	if c.WeeksElapsed < len(res.Weeks) {
		c.ProjectedCapital = res.Weeks[c.WeeksElapsed].CapitalEnd
	} else {
		c.ProjectedCapital = res.FinalCapital
		c.PlanExhausted = true
	}

	c.Delta = c.ActualCapital - c.ProjectedCapital
	c.OnTrack = c.Delta >= 0
	return c, true
}

// WeeklyActual returns running capital at the end of each elapsed week,
// starting with initialCapital, for plotting next to the projected curve.
// Entries are bucketed by whole weeks since the first entry. The series
// stops at the last week with a trade or at the end of the plan,
// whichever is first; weeks without trades carry the previous value.
func WeeklyActual(initialCapital float64, res projection.Result, entries []journal.Entry) []float64 {
	first, _, ok := journal.Span(entries)
	if !ok || len(res.Weeks) == 0 {
		return nil
	}

	buckets := map[int]float64{}
	maxWeek := 0
	for _, e := range entries {
		w := e.Date.DaysSince(first) / daysPerWeek
		buckets[w] += e.Signed()
		maxWeek = max(maxWeek, w)
	}

	last := min(maxWeek, len(res.Weeks)-1)
	out := make([]float64, 0, last+2)
	out = append(out, initialCapital)

	running := initialCapital
	for i := 0; i <= last; i++ {
		running += buckets[i]
		out = append(out, running)
	}
	return out
}

// ProjectedSeries is the starting capital followed by each week's end
// capital, aligned with WeeklyActual.
func ProjectedSeries(res projection.Result) []float64 {
	if len(res.Weeks) == 0 {
		return nil
	}
	out := make([]float64, 0, len(res.Weeks)+1)
	out = append(out, res.Weeks[0].CapitalStart)
	for _, w := range res.Weeks {
		out = append(out, w.CapitalEnd)
	}
	return out
}

// LocateWeek finds the schedule row whose capital band contains capital.
// Capital below the first week maps to 0, above the last week to the last
// index. Returns -1 for an empty result or when capital falls in no band,
// which only happens on a schedule that shrinks.
func LocateWeek(res projection.Result, capital float64) int {
	if len(res.Weeks) == 0 {
		return -1
	}
	for i, w := range res.Weeks {
		if capital >= w.CapitalStart && capital <= w.CapitalEnd {
			return i
		}
	}
	if capital < res.Weeks[0].CapitalStart {
		return 0
	}
	if capital > res.Weeks[len(res.Weeks)-1].CapitalEnd {
		return len(res.Weeks) - 1
	}
	return -1
}
