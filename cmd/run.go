package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kasparro/market-intel-cli/internal/ingest"
	"github.com/kasparro/market-intel-cli/internal/insights"
	"github.com/kasparro/market-intel-cli/internal/merge"
	"github.com/kasparro/market-intel-cli/internal/normalize"
	"github.com/kasparro/market-intel-cli/internal/report"
	"github.com/kasparro/market-intel-cli/internal/runlog"
	"github.com/kasparro/market-intel-cli/internal/table"
)

var runSkipInsights bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: clean, normalize, merge, insights",
	Long: `Runs the marketplace pipeline end to end over the configured paths.
The fetch phase is excluded — it needs live API credentials; run it
separately when a fresh review capture is wanted.

The two cleaning branches are independent and run concurrently.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !runSkipInsights && cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (MARKETINTEL_ANTHROPIC_KEY); pass --skip-insights to transform only")
		}

		return recordPhase(cmd.Context(), "run", cfg.Paths.GooglePlayCSV, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: cfg.Paths.CombinedCSV}

			var google, apple *table.Table

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error {
				raw, err := ingest.ReadCSVFile(cfg.Paths.GooglePlayCSV)
				if err != nil {
					return eris.Wrap(err, "run: read google play export")
				}
				cleaned := normalize.GooglePlay(raw)
				if err := cleaned.WriteCSVFile(cfg.Paths.CleanedAppsCSV); err != nil {
					return eris.Wrap(err, "run: write cleaned google play table")
				}
				google = merge.PrepareGooglePlay(cleaned)
				return gCtx.Err()
			})
			g.Go(func() error {
				raw, err := ingest.ReadJSONFile(cfg.Paths.AppStoreRawJSON)
				if err != nil {
					return eris.Wrap(err, "run: read review capture")
				}
				cleaned := normalize.AppStore(raw)
				if err := cleaned.WriteCSVFile(cfg.Paths.AppStoreCSV); err != nil {
					return eris.Wrap(err, "run: write cleaned reviews")
				}
				apple = merge.PrepareAppStore(cleaned)
				return gCtx.Err()
			})
			if err := g.Wait(); err != nil {
				return outcome, err
			}
			outcome.RowsIn = google.Len() + apple.Len()

			combined := merge.Combine(google, apple)
			outcome.RowsOut = combined.Len()
			if err := combined.WriteCSVFile(cfg.Paths.CombinedCSV); err != nil {
				return outcome, eris.Wrap(err, "run: write combined dataset")
			}

			xref, err := loadCrossRef()
			if err != nil {
				return outcome, err
			}
			crossPlatform := merge.CrossPlatform(google, apple, xref)
			if err := crossPlatform.WriteCSVFile(cfg.Paths.CrossPlatformCSV); err != nil {
				return outcome, eris.Wrap(err, "run: write cross-platform view")
			}

			if runSkipInsights {
				zap.L().Info("pipeline complete (insights skipped)", zap.Int("rows", combined.Len()))
				return outcome, nil
			}

			llm := newCompleter("run")
			result, err := insights.Market(ctx, llm, combined)
			if err != nil {
				return outcome, err
			}
			if err := insights.SaveJSON(cfg.Paths.InsightsJSON, result); err != nil {
				return outcome, err
			}
			stats := insights.ComputeMarketStats(combined)
			if err := report.WriteMarket(cfg.Paths.InsightsReportMD, stats, result); err != nil {
				return outcome, err
			}

			zap.L().Info("pipeline complete",
				zap.Int("rows", combined.Len()),
				zap.Bool("fallback", result.Fallback),
			)
			return outcome, nil
		})
	},
}

func init() {
	runCmd.Flags().BoolVar(&runSkipInsights, "skip-insights", false, "stop after the merge step")
	rootCmd.AddCommand(runCmd)
}
