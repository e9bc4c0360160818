package store

import (
	"context"
	"testing"

	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/pkg/id"
	"github.com/rustyeddy/tradeplan/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.LoadProjection(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	p := testParams()
	res := projection.Simulate(p)
	saved, err := s.SaveProjection(ctx, p, res)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.At)

	got, err := s.LoadProjection(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got.Params)
	assert.Equal(t, res, got.Result)
	assert.True(t, got.At.Equal(fixedNow))

	// recompute replaces the snapshot wholesale
	p.TargetPerDay = 50
	_, err = s.SaveProjection(ctx, p, projection.Simulate(p))
	require.NoError(t, err)
	got, err = s.LoadProjection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Params.TargetPerDay)
	assert.Equal(t, 1, got.Result.TotalWeeks)
}

func TestCorruptRecordsReadAsEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, KeyProjection, "{not json"))
	require.NoError(t, s.Put(ctx, KeyLogs, `[{"id":"1","outcome":"maybe","amount":1,"date":"2024-01-01"}]`))

	_, err := s.LoadProjection(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := s.Logs(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogsSkipsBadEntriesAndKeepsGoodOnes(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, KeyLogs, `[
		{"id":"a","outcome":"win","amount":100,"date":"2024-01-01"},
		{"id":"b","outcome":"loss","amount":40,"date":""},
		{"id":"c","outcome":"win","amount":5,"date":"not-a-date"},
		{"id":"a","outcome":"loss","amount":1,"date":"2024-01-02"},
		{"id":"d","outcome":"loss","amount":20,"date":"2024-01-03"}
	]`))

	entries, err := s.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, 100.0, entries[0].Amount)
	assert.Equal(t, "d", entries[1].ID)

	// writing back after an add keeps the entries that were valid
	added, err := s.AddEntry(ctx, testEntry("2024-01-04", journal.Win, 10))
	require.NoError(t, err)

	entries, err = s.Logs(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"a", "d", added.ID}, ids)
}

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	_, err := DecodeSnapshot([]byte(`{"params":{"capital":1000,"riskPct":2,"tpPoints":20,"slPoints":0,"maxTradesPerDay":2,"targetPerDay":100},"result":{"weeks":[{"week":1}],"totalWeeks":1}}`))
	assert.Error(t, err, "zero stop loss must not reach the simulator")

	_, err = DecodeSnapshot([]byte(`{"params":{"capital":1000,"riskPct":2,"tpPoints":20,"slPoints":10,"maxTradesPerDay":2,"targetPerDay":100},"result":{"weeks":[],"totalWeeks":0}}`))
	assert.Error(t, err)

	snap, err := DecodeSnapshot([]byte(`{"params":{"capital":1000,"riskPct":2,"tpPoints":20,"slPoints":10,"maxTradesPerDay":2,"targetPerDay":100},"result":{"weeks":[{"week":1,"capitalEnd":1400}],"totalWeeks":1,"finalCapital":1400},"at":"2024-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, 100.0, snap.Params.WinRate)
}

func TestDecodeLogs(t *testing.T) {
	t.Parallel()

	entries, err := DecodeLogs([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = DecodeLogs([]byte(`[{"id":"1","outcome":"win","amount":1,"date":"2024-01-01"},{"id":"1","outcome":"loss","amount":1,"date":"2024-01-02"}]`))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = DecodeLogs([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}

func TestAddAndDeleteEntry(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.AddEntry(ctx, testEntry("2024-01-01", journal.Win, 100))
	require.NoError(t, err)
	b, err := s.AddEntry(ctx, testEntry("2024-01-01", journal.Loss, 40))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.True(t, id.Less(a.ID, b.ID))

	entries, err := s.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0])
	assert.Equal(t, b, entries[1])
	assert.Equal(t, 60.0, journal.NetTotal(entries))

	require.NoError(t, s.DeleteEntry(ctx, a.ID))
	entries, err = s.Logs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []journal.Entry{b}, entries)

	assert.ErrorIs(t, s.DeleteEntry(ctx, a.ID), ErrEntryNotFound)
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.AddEntry(ctx, journal.Entry{Outcome: journal.Win, Amount: -5, Date: journal.NewDate(2024, 1, 1)})
	assert.Error(t, err)

	entries, err := s.Logs(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
