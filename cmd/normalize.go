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
	normalizeInput  string
	normalizeOutput string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize the raw App Store review capture into a CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := normalizeInput
		if input == "" {
			input = cfg.Paths.AppStoreRawJSON
		}
		output := normalizeOutput
		if output == "" {
			output = cfg.Paths.AppStoreCSV
		}

		return recordPhase(cmd.Context(), "normalize", input, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: output}

			raw, err := ingest.ReadJSONFile(input)
			if err != nil {
				return outcome, eris.Wrap(err, "normalize: read review capture")
			}
			outcome.RowsIn = raw.Len()

			cleaned := normalize.AppStore(raw)
			outcome.RowsOut = cleaned.Len()

			if err := cleaned.WriteCSVFile(output); err != nil {
				return outcome, eris.Wrap(err, "normalize: write cleaned reviews")
			}

			zap.L().Info("cleaned reviews saved",
				zap.String("path", output),
				zap.Int("rows", cleaned.Len()),
			)
			return outcome, nil
		})
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeInput, "input", "", "raw review JSON capture (default from config)")
	normalizeCmd.Flags().StringVar(&normalizeOutput, "output", "", "cleaned CSV path (default from config)")
	rootCmd.AddCommand(normalizeCmd)
}
