package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/rustyeddy/tradeplan/journal"
	"github.com/rustyeddy/tradeplan/store"
	"github.com/spf13/cobra"
)

func newDataCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Back up, restore and export stored data",
		Long: `Back up, restore and export the saved plan and trade log.

Subcommands:
  export  - Write a JSON backup of the plan and log
  import  - Replace the plan and log with a JSON backup
  csv     - Export the trade log as CSV
  usage   - Show bytes stored per record

Examples:
  tradeplan data export backup.json
  tradeplan data import backup.json
  tradeplan data csv trades.csv`,
	}

	cmd.AddCommand(
		newDataExportCmd(a),
		newDataImportCmd(a),
		newDataCSVCmd(a),
		newDataUsageCmd(a),
	)
	return cmd
}

// create opens path for writing; "-" is stdout.
func create(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newDataExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file|->",
		Short: "Write a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			b, err := s.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			w, err := create(cmd, args[0])
			if err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
			if err := store.EncodeBundle(w, b); err != nil {
				w.Close()
				return fmt.Errorf("write backup: %w", err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			if args[0] != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d entries to %s\n", len(b.Logs), args[0])
			}
			return nil
		},
	}
}

func newDataImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the plan and log with a JSON backup",
		Long: `Replace the saved plan and trade log with the contents of a JSON
backup. Nothing is merged. A malformed backup is rejected and existing
data is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open backup: %w", err)
			}
			defer f.Close()

			b, err := store.DecodeBundle(f)
			if err != nil {
				return err
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Import(cmd.Context(), b); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d entries from %s\n", len(b.Logs), args[0])
			return nil
		},
	}
}

func newDataCSVCmd(a *app) *cobra.Command {
	var pf periodFlags

	cmd := &cobra.Command{
		Use:   "csv <file|->",
		Short: "Export the trade log as CSV",
		Args:  cobra.ExactArgs(1),
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

			if args[0] == "-" {
				return journal.WriteCSV(cmd.OutOrStdout(), entries)
			}
			if err := journal.ExportCSV(args[0], entries); err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d entries to %s\n", len(entries), args[0])
			return nil
		},
	}

	pf.register(cmd)
	return cmd
}

func newDataUsageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show bytes stored per record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			usage, err := s.Usage(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage: %w", err)
			}

			keys := make([]string, 0, len(usage))
			var total int
			for k, n := range usage {
				keys = append(keys, k)
				total += n
			}
			slices.Sort(keys)

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "KEY\tSIZE\n")
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%s\n", k, humanize.Bytes(uint64(usage[k])))
			}
			fmt.Fprintf(tw, "TOTAL\t%s\n", humanize.Bytes(uint64(total)))
			return tw.Flush()
		},
	}
}
