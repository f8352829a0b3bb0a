package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/ingest"
	"github.com/kasparro/market-intel-cli/internal/merge"
	"github.com/kasparro/market-intel-cli/internal/runlog"
)

var mergeCrossRef string

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Combine the cleaned Google Play and App Store tables",
	Long: `Stacks the two cleaned tables into one combined CSV, tagging every row
with its platform, and writes the cross-platform per-app view driven by the
app correspondence table.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return recordPhase(cmd.Context(), "merge", cfg.Paths.CleanedAppsCSV, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: cfg.Paths.CombinedCSV}

			googleRaw, err := ingest.ReadCSVFile(cfg.Paths.CleanedAppsCSV)
			if err != nil {
				return outcome, eris.Wrap(err, "merge: read cleaned google play table")
			}
			appleRaw, err := ingest.ReadCSVFile(cfg.Paths.AppStoreCSV)
			if err != nil {
				return outcome, eris.Wrap(err, "merge: read cleaned app store table")
			}
			outcome.RowsIn = googleRaw.Len() + appleRaw.Len()

			google := merge.PrepareGooglePlay(googleRaw)
			apple := merge.PrepareAppStore(appleRaw)

			combined := merge.Combine(google, apple)
			outcome.RowsOut = combined.Len()

			if err := combined.WriteCSVFile(cfg.Paths.CombinedCSV); err != nil {
				return outcome, eris.Wrap(err, "merge: write combined dataset")
			}

			xref, err := loadCrossRef()
			if err != nil {
				return outcome, err
			}
			crossPlatform := merge.CrossPlatform(google, apple, xref)
			if err := crossPlatform.WriteCSVFile(cfg.Paths.CrossPlatformCSV); err != nil {
				return outcome, eris.Wrap(err, "merge: write cross-platform view")
			}

			zap.L().Info("combined dataset saved",
				zap.String("combined", cfg.Paths.CombinedCSV),
				zap.String("cross_platform", cfg.Paths.CrossPlatformCSV),
				zap.Int("rows", combined.Len()),
			)
			return outcome, nil
		})
	},
}

func loadCrossRef() (*merge.CrossRef, error) {
	path := mergeCrossRef
	if path == "" {
		path = cfg.Paths.CrossRefYAML
	}
	if path == "" {
		return merge.DefaultCrossRef(), nil
	}
	xref, err := merge.LoadCrossRef(path)
	if err != nil {
		return nil, eris.Wrap(err, "merge: load app correspondence table")
	}
	return xref, nil
}

func init() {
	mergeCmd.Flags().StringVar(&mergeCrossRef, "crossref", "", "YAML app correspondence table (default from config, falls back to built-in)")
	rootCmd.AddCommand(mergeCmd)
}
