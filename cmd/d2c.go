package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/ingest"
	"github.com/kasparro/market-intel-cli/internal/insights"
	"github.com/kasparro/market-intel-cli/internal/metrics"
	"github.com/kasparro/market-intel-cli/internal/normalize"
	"github.com/kasparro/market-intel-cli/internal/runlog"
)

var (
	d2cInput        string
	d2cSheet        string
	d2cSkipInsights bool
)

var d2cCmd = &cobra.Command{
	Use:   "d2c",
	Short: "Clean the D2C marketing sheet, derive funnel metrics, and generate insights",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := d2cInput
		if input == "" {
			input = cfg.Paths.D2CXLSX
		}

		if !d2cSkipInsights && cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (MARKETINTEL_ANTHROPIC_KEY); pass --skip-insights to clean only")
		}

		return recordPhase(cmd.Context(), "d2c", input, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: cfg.Paths.D2CCleanedCSV}

			raw, err := ingest.ReadXLSXFile(input, ingest.XLSXOptions{SheetName: d2cSheet})
			if err != nil {
				return outcome, eris.Wrap(err, "d2c: read marketing sheet")
			}
			outcome.RowsIn = raw.Len()

			cleaned := metrics.ComputeD2C(normalize.D2C(raw))
			outcome.RowsOut = cleaned.Len()

			if err := cleaned.WriteCSVFile(cfg.Paths.D2CCleanedCSV); err != nil {
				return outcome, eris.Wrap(err, "d2c: write cleaned dataset")
			}
			zap.L().Info("d2c dataset with metrics saved",
				zap.String("path", cfg.Paths.D2CCleanedCSV),
				zap.Int("rows", cleaned.Len()),
			)

			if d2cSkipInsights {
				return outcome, nil
			}

			llm := newCompleter("d2c")
			result, err := insights.D2C(ctx, llm, cleaned)
			if err != nil {
				return outcome, err
			}
			if err := insights.SaveJSON(cfg.Paths.D2CInsightsJSON, result); err != nil {
				return outcome, err
			}

			zap.L().Info("d2c insights saved",
				zap.String("path", cfg.Paths.D2CInsightsJSON),
				zap.Bool("fallback", result.Fallback),
			)
			return outcome, nil
		})
	},
}

func init() {
	d2cCmd.Flags().StringVar(&d2cInput, "input", "", "D2C XLSX workbook (default from config)")
	d2cCmd.Flags().StringVar(&d2cSheet, "sheet", "", "sheet name (default: first sheet)")
	d2cCmd.Flags().BoolVar(&d2cSkipInsights, "skip-insights", false, "clean and compute metrics only")
	rootCmd.AddCommand(d2cCmd)
}
