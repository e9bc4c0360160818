package journal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())

	d, err = ParseDate("2024-03-01T22:15:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = ParseDate("03/01/2024")
	assert.Error(t, err)
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-01-01", DateOf(late).String())
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.March, 1)
	assert.Equal(t, 60, b.DaysSince(a))
	assert.Equal(t, -60, a.DaysSince(b))
	assert.Equal(t, 0, a.DaysSince(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.AddDays(60).Equal(b))
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewDate(2024, time.January, 7))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-07"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-12-31"`), &d))
	assert.Equal(t, NewDate(2023, time.December, 31), d)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}
