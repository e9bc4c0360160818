package cli

import (
	"time"

	"github.com/rustyeddy/tradeplan/journal"
	"github.com/spf13/cobra"
)

// periodFlags select a day or week of the log. No flag means all time.
type periodFlags struct {
	today    bool
	thisWeek bool
	day      string
	week     string
	shift    int
}

func (pf *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&pf.today, "today", false, "Only today")
	cmd.Flags().BoolVar(&pf.thisWeek, "this-week", false, "Only the current Monday-Sunday week")
	cmd.Flags().StringVar(&pf.day, "day", "", "Only this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pf.week, "week", "", "Only the week containing this day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&pf.shift, "shift", 0, "Move the selected day or week by N steps (-1 = previous)")
	cmd.MarkFlagsMutuallyExclusive("today", "this-week", "day", "week")
}

func (pf periodFlags) resolve(now time.Time) (journal.Period, error) {
	var p journal.Period
	switch {
	case pf.today:
		p = journal.TodayPeriod(now)
	case pf.thisWeek:
		p = journal.ThisWeek(now)
	case pf.day != "":
		d, err := journal.ParseDate(pf.day)
		if err != nil {
			return p, err
		}
		p = journal.Day(d)
	case pf.week != "":
		d, err := journal.ParseDate(pf.week)
		if err != nil {
			return p, err
		}
		p = journal.Week(d)
	default:
		return journal.AllTime(), nil
	}
	return p.Shift(pf.shift), nil
}
