package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/tradeplan/projection"
	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		fp     projection.Params
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Simulate the compounding plan and save it",
		Long: `Run the week-over-week compounding simulation and save the result
as the current plan. Unset flags fall back to the plan section of the
config file.

The simulation stops when a week earns the daily target per trading day,
when weekly profit is no longer positive, or after 200 weeks.

Examples:
  tradeplan project
  tradeplan project --capital 5000 --risk 1 --win-rate 60
  tradeplan project --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.Plan
			f := cmd.Flags()
			if f.Changed("capital") {
				p.Capital = fp.Capital
			}
			if f.Changed("risk") {
				p.RiskPct = fp.RiskPct
			}
			if f.Changed("tp") {
				p.TPPoints = fp.TPPoints
			}
			if f.Changed("sl") {
				p.SLPoints = fp.SLPoints
			}
			if f.Changed("trades") {
				p.MaxTradesPerDay = fp.MaxTradesPerDay
			}
			if f.Changed("target") {
				p.TargetPerDay = fp.TargetPerDay
			}
			if f.Changed("win-rate") {
				p.WinRate = fp.WinRate
			}

			if d := projection.Check(p); !d.Allowed {
				for _, v := range d.Violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", v.Code, v.Msg)
				}
				return fmt.Errorf("invalid plan parameters")
			}

			sim := projection.Simulator{Quantizer: a.cfg.Lots.Quantizer()}
			res := sim.Simulate(p)
			a.log.Debug("simulated", "weeks", res.TotalWeeks, "final", res.FinalCapital)

			out := cmd.OutOrStdout()
			if err := writeWeeks(out, res); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, outcomeLine(res))
			fmt.Fprintf(out, "Final capital: %s after %d weeks\n", money(res.FinalCapital), res.TotalWeeks)
			fmt.Fprintf(out, "Goal points: %s/day, %s/week\n", points(p.DailyGoalPoints()), points(p.WeeklyGoalPoints()))

			if dryRun {
				return nil
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.SaveProjection(cmd.Context(), p, res); err != nil {
				return fmt.Errorf("save projection: %w", err)
			}
			fmt.Fprintln(out, "✓ Plan saved")
			return nil
		},
	}

	cmd.Flags().Float64Var(&fp.Capital, "capital", 0, "Starting capital")
	cmd.Flags().Float64Var(&fp.RiskPct, "risk", 0, "Risk per trade, percent of capital")
	cmd.Flags().Float64Var(&fp.TPPoints, "tp", 0, "Take profit distance in points")
	cmd.Flags().Float64Var(&fp.SLPoints, "sl", 0, "Stop loss distance in points")
	cmd.Flags().IntVar(&fp.MaxTradesPerDay, "trades", 0, "Max trades per day")
	cmd.Flags().Float64Var(&fp.TargetPerDay, "target", 0, "Daily earnings target")
	cmd.Flags().Float64Var(&fp.WinRate, "win-rate", 0, "Expected win rate, percent")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without saving it")

	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect the saved plan",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved plan",
		Long: `Print the saved plan exactly as saved, the same schedule compare
uses. When the current lot settings would produce a different schedule
a note says so; run project again to replace it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := loadPlan(cmd.Context(), s)
			if err != nil {
				return err
			}

			p, res := snap.Params, snap.Result

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s\n", snap.At.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Capital %s  risk %s  TP %s  SL %s  trades/day %d  target %s/day  win rate %s\n\n",
				money(p.Capital), pct(p.RiskPct), points(p.TPPoints), points(p.SLPoints),
				p.MaxTradesPerDay, money(p.TargetPerDay), pct(p.WinRate))
			if err := writeWeeks(out, res); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, outcomeLine(res))

			sim := projection.Simulator{Quantizer: a.cfg.Lots.Quantizer()}
			if now := sim.Simulate(p); !sameSchedule(now, res) {
				fmt.Fprintf(out, "Note: current lot settings give %d weeks ending at %s; run `tradeplan project` to update.\n",
					now.TotalWeeks, money(now.FinalCapital))
			}
			return nil
		},
	})

	return cmd
}

func loadPlan(ctx context.Context, s *store.SQLite) (store.Snapshot, error) {
	snap, err := s.LoadProjection(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return snap, fmt.Errorf("%w: run `tradeplan project` first", err)
	}
	if err != nil {
		return snap, fmt.Errorf("load plan: %w", err)
	}
	return snap, nil
}

func sameSchedule(a, b projection.Result) bool {
	if a.TotalWeeks != b.TotalWeeks || len(a.Weeks) != len(b.Weeks) {
		return false
	}
	for i := range a.Weeks {
		if math.Abs(a.Weeks[i].CapitalEnd-b.Weeks[i].CapitalEnd) > 1e-6 {
			return false
		}
	}
	return true
}
