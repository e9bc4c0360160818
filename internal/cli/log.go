package cli

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/risk"
	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and review actual trades",
		Long: `Record and review actual trade outcomes.

Subcommands:
  add   - Log a win or loss
  rm    - Delete an entry by id
  list  - List entries, newest first

Examples:
  tradeplan log add --outcome win --amount 40 --points 20
  tradeplan log list --this-week
  tradeplan log rm 01HZX3K5W8YF2Q6N1B7C9D0E4G`,
	}

	cmd.AddCommand(newLogAddCmd(a), newLogRmCmd(a), newLogListCmd(a))
	return cmd
}

func newLogAddCmd(a *app) *cobra.Command {
	var (
		outcome    string
		amount     float64
		lotSize    float64
		pts        float64
		sl         float64
		commission float64
		dateStr    string
		note       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a trade outcome",
		Long: `Log the realized result of one trade. Amount is the size of the win
or loss; the outcome gives the sign.

When --lot is omitted it is derived from the amount and the TP (win) or
SL (loss) distance, falling back to the last lot used. --commission
defaults to the last commission used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := journal.ParseOutcome(outcome)
			if err != nil {
				return err
			}

			date := journal.DateOf(a.now())
			if dateStr != "" {
				if date, err = journal.ParseDate(dateStr); err != nil {
					return err
				}
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := cmd.Context()

			e := journal.Entry{
				Outcome: o,
				Amount:  amount,
				Date:    date,
				Note:    note,
			}
			f := cmd.Flags()
			if f.Changed("points") {
				e.Points = journal.Float(pts)
			}
			if f.Changed("sl") {
				e.SL = journal.Float(sl)
			}

			switch {
			case f.Changed("lot"):
				e.Lot = journal.Float(lotSize)
			default:
				if l := risk.DeriveLot(o == journal.Win, amount, pts, sl); l > 0 {
					e.Lot = journal.Float(l)
				} else if l, ok := prefFloat(cmd, s, store.PrefLastLot); ok {
					e.Lot = journal.Float(l)
				}
			}

			if f.Changed("commission") {
				e.Commission = commission
			} else if c, ok := prefFloat(cmd, s, store.PrefLastCommission); ok {
				e.Commission = c
			}

			e, err = s.AddEntry(ctx, e)
			if err != nil {
				return fmt.Errorf("add entry: %w", err)
			}

			if e.Lot != nil {
				if err := s.SetPref(ctx, store.PrefLastLot, lot(*e.Lot)); err != nil {
					return err
				}
			}
			if err := s.SetPref(ctx, store.PrefLastCommission, points(e.Commission)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged %s %s %s on %s\n",
				e.ID, e.Outcome, signed(e.Signed()), e.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outcome, "outcome", "o", "", "win or loss (required)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Size of the win or loss (required)")
	cmd.Flags().Float64Var(&lotSize, "lot", 0, "Lot size traded")
	cmd.Flags().Float64Var(&pts, "points", 0, "Take profit distance in points")
	cmd.Flags().Float64Var(&sl, "sl", 0, "Stop loss distance in points")
	cmd.Flags().Float64Var(&commission, "commission", 0, "Commission paid")
	cmd.Flags().StringVar(&dateStr, "date", "", "Trade date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	cmd.MarkFlagRequired("outcome")
	cmd.MarkFlagRequired("amount")

	return cmd
}

// prefFloat reads a numeric preference. Unset or unparsable is ok=false.
func prefFloat(cmd *cobra.Command, s *store.SQLite, key string) (float64, bool) {
	v, ok, err := s.Pref(cmd.Context(), key)
	if err != nil || !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func newLogRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a log entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete entry: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

func newLogListCmd(a *app) *cobra.Command {
	var (
		pf  periodFlags
		org bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List log entries, newest first",
		Args:  cobra.NoArgs,
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

			all, err := s.Logs(cmd.Context())
			if err != nil {
				return fmt.Errorf("query logs: %w", err)
			}
			entries := journal.Filter(all, period)

			out := cmd.OutOrStdout()
			if org {
				fmt.Fprintln(out, journal.FormatEntriesOrg(entries))
				return nil
			}

			fmt.Fprintf(out, "%s: %d trades\n\n", period, len(entries))
			if len(entries) == 0 {
				return nil
			}

			tw := newTable(out)
			fmt.Fprintf(tw, "DATE\tOUTCOME\tAMOUNT\tCOMM\tNET\tLOT\tTP\tSL\tID\tNOTE\n")
			for _, e := range journal.SortByDateDesc(entries) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Date,
					e.Outcome,
					signed(e.Signed()),
					money(e.Commission),
					signed(e.NetPL()),
					optional(e.Lot),
					optional(e.Points),
					optional(e.SL),
					e.ID,
					e.Note,
				)
			}
			return tw.Flush()
		},
	}

	pf.register(cmd)
	cmd.Flags().BoolVar(&org, "org", false, "Print entries as Org-mode headings")
	return cmd
}
