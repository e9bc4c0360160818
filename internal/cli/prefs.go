package cli

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

// prefKey accepts "last_lot" as well as "pref.last_lot".
func prefKey(s string) string {
	if strings.HasPrefix(s, "pref.") {
		return s
	}
	return "pref." + s
}

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write stored preferences",
		Long: `Read and write the scalar preferences kept next to the plan and log:
last_lot, last_commission, theme and locale.

Examples:
  tradeplan prefs list
  tradeplan prefs get last_lot
  tradeplan prefs set theme dark`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tw := newTable(cmd.OutOrStdout())
			for _, k := range store.Prefs {
				v, ok, err := s.Pref(cmd.Context(), k)
				if err != nil {
					return err
				}
				if !ok {
					v = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\n", strings.TrimPrefix(k, "pref."), v)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			v, ok, err := s.Pref(cmd.Context(), prefKey(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetPref(cmd.Context(), prefKey(args[0]), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
