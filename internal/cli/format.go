package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rustyeddy/tradeplan/projection"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// money renders $1,234.56 or -$1,234.56.
func money(x float64) string {
	if x < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -x)
	}
	return "$" + humanize.FormatFloat("#,###.##", x)
}

// signed renders +$12.00 or -$12.00.
func signed(x float64) string {
	if x >= 0 {
		return "+" + money(x)
	}
	return money(x)
}

func lot(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func points(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func optional(p *float64) string {
	if p == nil {
		return "-"
	}
	return points(*p)
}

func pct(x float64) string {
	return strconv.FormatFloat(math.Round(x*10)/10, 'f', 1, 64) + "%"
}

func writeWeeks(w io.Writer, res projection.Result) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "WEEK\tSTART\tRISK\tLOT\tWIN\tLOSS\tWEEKLY\tEND\tPER DAY\n")
	fmt.Fprintf(tw, "────\t─────\t────\t───\t───\t────\t──────\t───\t───────\n")
	for _, wk := range res.Weeks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			wk.Week,
			money(wk.CapitalStart),
			money(wk.RiskDollar),
			lot(wk.MaxLot),
			money(wk.ProfitPerWin),
			money(wk.LossPerLoss),
			signed(wk.WeeklyProfit),
			money(wk.CapitalEnd),
			money(wk.EarningPerDay()),
		)
	}
	return tw.Flush()
}

// outcomeLine explains why the simulation stopped.
func outcomeLine(res projection.Result) string {
	switch {
	case len(res.Weeks) == 0:
		return "No weeks simulated."
	case res.ReachedGoal():
		return fmt.Sprintf("Daily target of %s reached in week %d.", money(res.TargetPerDay), res.TotalWeeks)
	case res.Capped():
		return fmt.Sprintf("Stopped at the %d-week cap before reaching the target.", projection.MaxWeeks)
	default:
		return fmt.Sprintf("Stopped in week %d: weekly profit is not positive at this win rate.", res.TotalWeeks)
	}
}
