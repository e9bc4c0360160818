package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradeplan/equity"
	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/projection"
	"github.com/rustyeddy/tradeplan/reconcile"
	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

// planParams is the saved plan's params, or the configured defaults when
// nothing is saved.
func (a *app) planParams(ctx context.Context, s *store.SQLite) (projection.Params, error) {
	snap, err := s.LoadProjection(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return a.cfg.Plan, nil
	}
	if err != nil {
		return projection.Params{}, fmt.Errorf("load plan: %w", err)
	}
	return snap.Params, nil
}

func newSummaryCmd(a *app) *cobra.Command {
	var pf periodFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate the log for a period",
		Long: `Print trade count, win rate, net result, average distances and R:R
for the selected period. Day and week periods also show progress toward
the plan's points goal.

Examples:
  tradeplan summary
  tradeplan summary --this-week
  tradeplan summary --this-week --shift -1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := pf.resolve(a.now())
			if err != nil {
				return fmt.Errorf("date: %w", err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := cmd.Context()

			all, err := s.Logs(ctx)
			if err != nil {
				return fmt.Errorf("query logs: %w", err)
			}
			entries := journal.Filter(all, period)
			sum := journal.Summarize(entries)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", period)
			tw := newTable(out)
			fmt.Fprintf(tw, "Trades\t%d (%d W / %d L)\n", sum.Trades, sum.Wins, sum.Losses)
			fmt.Fprintf(tw, "Win rate\t%s\n", pct(sum.WinRatePct))
			fmt.Fprintf(tw, "Net\t%s\n", signed(sum.Net))
			fmt.Fprintf(tw, "Commission\t%s\n", money(sum.Commission))
			fmt.Fprintf(tw, "Net after commission\t%s\n", signed(sum.Net-sum.Commission))
			fmt.Fprintf(tw, "Net points\t%s\n", points(sum.NetPoints))
			fmt.Fprintf(tw, "Avg TP / SL\t%s / %s\n", points(sum.AvgTP), points(sum.AvgSL))
			fmt.Fprintf(tw, "R:R\t%.2f\n", sum.RR)
			if err := tw.Flush(); err != nil {
				return err
			}

			var goal float64
			switch period.Kind {
			case journal.DayKind, journal.WeekKind:
				p, err := a.planParams(ctx, s)
				if err != nil {
					return err
				}
				goal = p.DailyGoalPoints()
				if period.Kind == journal.WeekKind {
					goal = p.WeeklyGoalPoints()
				}
			default:
				return nil
			}

			prog := journal.GoalProgress(entries, goal)
			status := "in progress"
			if prog.Done {
				status = "done"
			}
			fmt.Fprintf(out, "\nGoal: %s / %s points (%s, %s)\n",
				points(prog.NetPoints), points(prog.Goal), pct(prog.Pct()), status)
			return nil
		},
	}

	pf.register(cmd)
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare actual capital against the saved plan",
		Long: `Map the weeks elapsed since the first logged trade onto the saved
plan and report whether actual capital is ahead of or behind it, then
list actual and projected capital week by week.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := cmd.Context()

			snap, err := loadPlan(ctx, s)
			if err != nil {
				return err
			}
			entries, err := s.Logs(ctx)
			if err != nil {
				return fmt.Errorf("query logs: %w", err)
			}

			out := cmd.OutOrStdout()
			c, ok := reconcile.Compare(snap.Params, snap.Result, entries)
			if !ok {
				fmt.Fprintln(out, "Nothing to compare yet: log a trade first.")
				return nil
			}
			a.log.Debug("compared", "weeks", c.WeeksElapsed, "delta", c.Delta)

			if c.OnTrack {
				fmt.Fprintf(out, "✓ On track: %s ahead of plan\n", money(c.Delta))
			} else {
				fmt.Fprintf(out, "✗ Behind plan by %s\n", money(-c.Delta))
			}
			fmt.Fprintf(out, "  Actual %s vs projected %s (week %d)\n",
				money(c.ActualCapital), money(c.ProjectedCapital), c.WeeksElapsed+1)
			if c.PlanExhausted {
				fmt.Fprintf(out, "  Plan ended after %d weeks; projection held at %s\n",
					snap.Result.TotalWeeks, money(snap.Result.FinalCapital))
			}
			if i := reconcile.LocateWeek(snap.Result, c.ActualCapital); i >= 0 {
				fmt.Fprintf(out, "  Your capital is at plan week %d\n", snap.Result.Weeks[i].Week)
			}

			actual := reconcile.WeeklyActual(snap.Params.Capital, snap.Result, entries)
			projected := reconcile.ProjectedSeries(snap.Result)

			fmt.Fprintln(out)
			tw := newTable(out)
			fmt.Fprintf(tw, "WEEK\tPROJECTED\tACTUAL\tDELTA\n")
			for i, act := range actual {
				label := fmt.Sprint(i)
				if i == 0 {
					label = equity.StartLabel
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", label, money(projected[i]), money(act), signed(act-projected[i]))
			}
			return tw.Flush()
		},
	}
}

func newCurveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "curve",
		Short: "Print the realized equity curve",
		Long: `Print capital after each logged trade, oldest first, with the
running peak and the maximum drawdown. Starts from the saved plan's
capital, or the configured capital when no plan is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := cmd.Context()

			p, err := a.planParams(ctx, s)
			if err != nil {
				return err
			}
			entries, err := s.Logs(ctx)
			if err != nil {
				return fmt.Errorf("query logs: %w", err)
			}

			out := cmd.OutOrStdout()
			c, err := equity.Build(p.Capital, entries)
			if errors.Is(err, equity.ErrTooFewEntries) {
				fmt.Fprintln(out, "Log at least 2 trades to draw an equity curve.")
				return nil
			}
			if err != nil {
				return err
			}

			tw := newTable(out)
			fmt.Fprintf(tw, "#\tDATE\tEQUITY\tPEAK\n")
			for i := range c.Series {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, c.Labels[i], money(c.Series[i]), money(c.Peak[i]))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			dd := c.MaxDrawdown()
			fmt.Fprintf(out, "\nCurrent %s, net %s\n", money(c.Last()), signed(c.Last()-p.Capital))
			if dd.Amount > 0 {
				fmt.Fprintf(out, "Max drawdown %s (%s) at #%d\n", money(dd.Amount), pct(dd.Pct), dd.Index)
			} else {
				fmt.Fprintln(out, "No drawdown")
			}
			return nil
		},
	}
}
