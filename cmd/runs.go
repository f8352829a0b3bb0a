package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/kasparro/market-intel-cli/internal/runlog"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := runlog.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "runs: open ledger")
		}
		defer store.Close() //nolint:errcheck

		if err := store.Migrate(ctx); err != nil {
			return eris.Wrap(err, "runs: migrate ledger")
		}

		runs, err := store.List(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(runs), "runs: encode")
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list")
	rootCmd.AddCommand(runsCmd)
}
