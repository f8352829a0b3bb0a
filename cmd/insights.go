package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/ingest"
	"github.com/kasparro/market-intel-cli/internal/insights"
	"github.com/kasparro/market-intel-cli/internal/report"
	"github.com/kasparro/market-intel-cli/internal/runlog"
	"github.com/kasparro/market-intel-cli/pkg/anthropic"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate market insights from the combined dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (MARKETINTEL_ANTHROPIC_KEY)")
		}

		return recordPhase(cmd.Context(), "insights", cfg.Paths.CombinedCSV, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: cfg.Paths.InsightsJSON}

			combined, err := ingest.ReadCSVFile(cfg.Paths.CombinedCSV)
			if err != nil {
				return outcome, eris.Wrap(err, "insights: read combined dataset")
			}
			outcome.RowsIn = combined.Len()

			llm := newCompleter("insights")
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

			outcome.RowsOut = len(result.Insights)
			zap.L().Info("insights saved",
				zap.String("json", cfg.Paths.InsightsJSON),
				zap.String("report", cfg.Paths.InsightsReportMD),
				zap.Bool("fallback", result.Fallback),
			)
			return outcome, nil
		})
	},
}

// newCompleter builds the model adapter the insight phases share.
func newCompleter(phase string) *anthropic.Completer {
	return &anthropic.Completer{
		Client:    anthropic.NewClient(cfg.Anthropic.Key),
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		Timeout:   time.Duration(cfg.Anthropic.TimeoutSecs) * time.Second,
		Phase:     phase,
	}
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
