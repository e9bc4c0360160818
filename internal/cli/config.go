package cli

import (
	"fmt"

	"github.com/rustyeddy/tradeplan/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var (
		output string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradeplan config init -o tradeplan.yaml
  tradeplan config validate -f tradeplan.yaml`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  tradeplan --config %s project\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "tradeplan.yaml", "output config file path")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(file)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			a.log.Debug("config validated", "path", file)

			out := cmd.OutOrStdout()
			p := cfg.Plan
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", file)
			fmt.Fprintf(out, "  Plan: %s capital, %s risk, TP %s / SL %s, %d trades/day, %s/day target\n",
				money(p.Capital), pct(p.RiskPct), points(p.TPPoints), points(p.SLPoints),
				p.MaxTradesPerDay, money(p.TargetPerDay))
			fmt.Fprintf(out, "  Lots: min %s, step %s\n", lot(cfg.Lots.MinLot), lot(cfg.Lots.LotStep))
			fmt.Fprintf(out, "  Store: %s\n", cfg.Store.DBPath)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&file, "file", "f", "", "path to config file (required)")
	validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
