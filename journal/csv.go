package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVHeader is the column order of WriteCSV.
var CSVHeader = []string{"date", "outcome", "amount", "commission", "net_pl", "lot", "tp_points", "sl_points", "note"}

// WriteCSV writes one row per entry, oldest first. Optional values that
// were never recorded are left empty.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, e := range SortByDate(entries) {
		err := cw.Write([]string{
			e.Date.String(),
			string(e.Outcome),
			money(e.Amount),
			money(e.Commission),
			money(e.NetPL()),
			optional(e.Lot),
			optional(e.Points),
			optional(e.SL),
			e.Note,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes entries to path, replacing any existing file.
func ExportCSV(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func optional(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
