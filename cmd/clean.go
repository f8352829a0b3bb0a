package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/ingest"
	"github.com/kasparro/market-intel-cli/internal/normalize"
	"github.com/kasparro/market-intel-cli/internal/runlog"
)

var (
	cleanInput  string
	cleanOutput string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the Google Play CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := cleanInput
		if input == "" {
			input = cfg.Paths.GooglePlayCSV
		}
		output := cleanOutput
		if output == "" {
			output = cfg.Paths.CleanedAppsCSV
		}

		return recordPhase(cmd.Context(), "clean", input, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: output}

			raw, err := ingest.ReadCSVFile(input)
			if err != nil {
				return outcome, eris.Wrap(err, "clean: read google play export")
			}
			outcome.RowsIn = raw.Len()

			cleaned := normalize.GooglePlay(raw)
			outcome.RowsOut = cleaned.Len()

			if err := cleaned.WriteCSVFile(output); err != nil {
				return outcome, eris.Wrap(err, "clean: write cleaned dataset")
			}

			zap.L().Info("cleaned dataset saved",
				zap.String("path", output),
				zap.Int("rows", cleaned.Len()),
			)
			return outcome, nil
		})
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "raw Google Play CSV (default from config)")
	cleanCmd.Flags().StringVar(&cleanOutput, "output", "", "cleaned CSV path (default from config)")
	rootCmd.AddCommand(cleanCmd)
}
