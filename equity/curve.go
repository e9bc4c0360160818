// Package equity builds the realized equity curve of the trade log.
package equity

import (
	"errors"

	"github.com/rustyeddy/tradeplan/journal"
)

// ErrTooFewEntries means a curve needs at least two trades to draw.
var ErrTooFewEntries = errors.New("equity: at least 2 entries required")

// StartLabel names the initial point of a curve.
const StartLabel = "Start"

// Curve holds capital after each trade and the running peak, both seeded
// with the initial capital, so len(Series) == len(entries)+1.
type Curve struct {
	Labels []string
	Series []float64
	Peak   []float64
}

// Build sorts entries by date (same-day trades in logged order) and
// accumulates signed results on top of initialCapital.
func Build(initialCapital float64, entries []journal.Entry) (Curve, error) {
	if len(entries) < 2 {
		return Curve{}, ErrTooFewEntries
	}

	sorted := journal.SortByDate(entries)
	n := len(sorted) + 1
	c := Curve{
		Labels: make([]string, 0, n),
		Series: make([]float64, 0, n),
		Peak:   make([]float64, 0, n),
	}
	c.Labels = append(c.Labels, StartLabel)
	c.Series = append(c.Series, initialCapital)
	c.Peak = append(c.Peak, initialCapital)

	running, peak := initialCapital, initialCapital
	for _, e := range sorted {
		running += e.Signed()
		peak = max(peak, running)
		c.Labels = append(c.Labels, e.Date.String())
		c.Series = append(c.Series, running)
		c.Peak = append(c.Peak, peak)
	}
	return c, nil
}

// Drawdown is the deepest fall from a running peak.
type Drawdown struct {
	Amount float64
	Pct    float64 // percent of the peak it fell from
	Index  int     // point in Series where it bottomed
}

func (c Curve) MaxDrawdown() Drawdown {
	var dd Drawdown
	for i := range c.Series {
		fall := c.Peak[i] - c.Series[i]
		if fall > dd.Amount {
			dd.Amount = fall
			dd.Index = i
			if c.Peak[i] > 0 {
				dd.Pct = 100 * fall / c.Peak[i]
			}
		}
	}
	return dd
}

// Last is the capital after the most recent trade.
func (c Curve) Last() float64 {
	if len(c.Series) == 0 {
		return 0
	}
	return c.Series[len(c.Series)-1]
}
