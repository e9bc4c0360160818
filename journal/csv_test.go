package journal

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	a := win("a", "2024-01-05", 100)
	a.Lot = Float(2.5)
	a.Points = Float(40)
	a.Commission = 3.5
	a.Note = `breakout, "clean"`

	b := loss("b", "2024-01-02", 40)
	b.SL = Float(20)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Entry{a, b}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"2024-01-02", "loss", "40.00", "0.00", "-40.00", "", "", "20", ""}, rows[1])
	assert.Equal(t, []string{"2024-01-05", "win", "100.00", "3.50", "96.50", "2.5", "40", "", `breakout, "clean"`}, rows[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{CSVHeader}, rows)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, ExportCSV(path, []Entry{win("a", "2024-01-05", 10)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-05,win,10.00,0.00,10.00,,,,")

	assert.Error(t, ExportCSV(filepath.Join(t.TempDir(), "missing", "log.csv"), nil))
}
