package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day string
		mon string
		sun string
	}{
		{"2024-01-01", "2024-01-01", "2024-01-07"}, // Monday
		{"2024-01-03", "2024-01-01", "2024-01-07"},
		{"2024-01-07", "2024-01-01", "2024-01-07"}, // Sunday
		{"2024-01-08", "2024-01-08", "2024-01-14"},
		{"2024-03-03", "2024-02-26", "2024-03-03"}, // across a leap day
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.day, func(t *testing.T) {
			t.Parallel()
			mon, sun := WeekBounds(mustDate(tt.day))
			assert.Equal(t, tt.mon, mon.String())
			assert.Equal(t, tt.sun, sun.String())
			assert.Equal(t, time.Monday, mon.Weekday())
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		win("a", "2023-12-31", 10), // Sunday of previous week
		win("b", "2024-01-01", 20),
		loss("c", "2024-01-04", 5),
		win("d", "2024-01-07", 7),
		win("e", "2024-01-08", 9),
	}

	week := Filter(entries, Week(mustDate("2024-01-03")))
	assert.Len(t, week, 3)
	assert.Equal(t, 22.0, NetTotal(week))

	day := Filter(entries, Day(mustDate("2024-01-04")))
	assert.Len(t, day, 1)
	assert.Equal(t, "c", day[0].ID)

	assert.Len(t, Filter(entries, AllTime()), 5)
	assert.Empty(t, Filter(entries, Day(mustDate("2024-02-01"))))
}

func TestPeriodShift(t *testing.T) {
	t.Parallel()

	w := Week(mustDate("2024-01-03"))
	prev := w.Shift(-1)
	assert.Equal(t, "2023-12-25", prev.Start.String())
	assert.Equal(t, "2023-12-31", prev.End.String())
	assert.Equal(t, w, prev.Shift(1))

	d := Day(mustDate("2024-01-31")).Shift(1)
	assert.Equal(t, "2024-02-01", d.Start.String())

	assert.Equal(t, AllTime(), AllTime().Shift(3))
}

func TestPeriodString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "All Time", AllTime().String())
	assert.Equal(t, "2024-01-04", Day(mustDate("2024-01-04")).String())
	assert.Equal(t, "Jan 1 – Jan 7", Week(mustDate("2024-01-04")).String())
}

func TestThisWeekAndToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-01-08", ThisWeek(now).Start.String())
	assert.Equal(t, "2024-01-10", TodayPeriod(now).Start.String())
}
