// Package journal holds the trade log: entries as the user records them,
// period selection, aggregate statistics and CSV/Org exports.
package journal

import (
	"fmt"
	"sort"

	"github.com/rustyeddy/tradeplan/pkg/id"
)

type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
)

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case Win, Loss:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("outcome %q must be win or loss", s)
}

// Entry is one closed trade. Amount is always a magnitude; Outcome gives the
// sign. Lot, Points and SL are nil when not recorded. Entries are created
// and deleted but never edited.
type Entry struct {
	ID         string   `json:"id"`
	Outcome    Outcome  `json:"outcome"`
	Amount     float64  `json:"amount"`
	Lot        *float64 `json:"lot,omitempty"`
	Points     *float64 `json:"points,omitempty"`
	SL         *float64 `json:"sl,omitempty"`
	Commission float64  `json:"commission,omitempty"`
	Date       Date     `json:"date"`
	Note       string   `json:"note,omitempty"`
}

// Float returns a pointer for the optional Entry fields.
func Float(v float64) *float64 { return &v }

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func (e Entry) IsWin() bool { return e.Outcome == Win }

// Signed is +Amount for a win and -Amount for a loss.
func (e Entry) Signed() float64 {
	if e.IsWin() {
		return e.Amount
	}
	return -e.Amount
}

// NetPL is Signed less commission.
func (e Entry) NetPL() float64 {
	return e.Signed() - e.Commission
}

// SignedPoints is +Points for a win and -SL for a loss; missing counts as 0.
func (e Entry) SignedPoints() float64 {
	if e.IsWin() {
		return value(e.Points)
	}
	return -value(e.SL)
}

// Validate rejects entries that could not have come from the log form.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry: missing id")
	}
	if _, err := ParseOutcome(string(e.Outcome)); err != nil {
		return fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.Amount < 0 {
		return fmt.Errorf("entry %s: amount %.2f must not be negative", e.ID, e.Amount)
	}
	if e.Commission < 0 {
		return fmt.Errorf("entry %s: commission must not be negative", e.ID)
	}
	for name, p := range map[string]*float64{"lot": e.Lot, "points": e.Points, "sl": e.SL} {
		if p != nil && *p < 0 {
			return fmt.Errorf("entry %s: %s must not be negative", e.ID, name)
		}
	}
	if e.Date.IsZero() {
		return fmt.Errorf("entry %s: missing date", e.ID)
	}
	return nil
}

// SortByDate returns a copy sorted oldest first. Same-day entries keep
// their relative order, which is the order they were logged.
func SortByDate(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortByDateDesc returns a copy sorted newest first for listings. Same-day
// entries are ordered by id, latest logged first.
func SortByDateDesc(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return id.Less(b.ID, a.ID)
	})
	return out
}

// Span returns the earliest and latest entry dates; ok=false when empty.
func Span(entries []Entry) (first, last Date, ok bool) {
	for i, e := range entries {
		if i == 0 || e.Date.Before(first) {
			first = e.Date
		}
		if i == 0 || e.Date.After(last) {
			last = e.Date
		}
	}
	return first, last, len(entries) > 0
}
