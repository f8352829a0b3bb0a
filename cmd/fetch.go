package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/runlog"
	"github.com/kasparro/market-intel-cli/pkg/appstore"
)

var (
	fetchAppID string
	fetchPages int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch App Store reviews and persist the raw JSON capture",
	Long: `Calls the review API and writes each page's response body verbatim.
Page 1 lands at the configured capture path; later pages get a numeric
suffix. Transport or HTTP failures abort the run — no retries.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.AppStore.Key == "" {
			return eris.New("appstore API key is required (MARKETINTEL_APPSTORE_KEY)")
		}
		if cfg.AppStore.Host == "" {
			return eris.New("appstore API host is required (MARKETINTEL_APPSTORE_HOST)")
		}

		appID := fetchAppID
		if appID == "" {
			appID = cfg.AppStore.AppID
		}
		if appID == "" {
			return eris.New("app id is required (--app-id or MARKETINTEL_APPSTORE_APP_ID)")
		}

		return recordPhase(cmd.Context(), "fetch", appID, func(ctx context.Context) (runlog.Outcome, error) {
			outcome := runlog.Outcome{OutputPath: cfg.Paths.AppStoreRawJSON}

			client := appstore.NewClient(cfg.AppStore.Key, cfg.AppStore.Host,
				time.Duration(cfg.AppStore.TimeoutSecs)*time.Second)

			for page := 1; page <= fetchPages; page++ {
				body, err := client.FetchReviewsRaw(ctx, appstore.ReviewQuery{
					AppID:   appID,
					Sort:    cfg.AppStore.Sort,
					Page:    page,
					Country: cfg.AppStore.Country,
					Lang:    cfg.AppStore.Lang,
				})
				if err != nil {
					return outcome, eris.Wrapf(err, "fetch: page %d", page)
				}

				path := capturePath(cfg.Paths.AppStoreRawJSON, page)
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return outcome, eris.Wrapf(err, "fetch: mkdir %s", filepath.Dir(path))
				}
				if err := os.WriteFile(path, body, 0o644); err != nil {
					return outcome, eris.Wrapf(err, "fetch: write %s", path)
				}

				zap.L().Info("review capture saved",
					zap.String("path", path),
					zap.Int("page", page),
					zap.Int("bytes", len(body)),
				)
			}

			return outcome, nil
		})
	},
}

// capturePath returns the raw capture path for a page: page 1 keeps the
// configured name, later pages get a numeric suffix before the extension.
func capturePath(base string, page int) string {
	if page <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_p%d%s", base[:len(base)-len(ext)], page, ext)
}

func init() {
	fetchCmd.Flags().StringVar(&fetchAppID, "app-id", "", "App Store app id (default from config)")
	fetchCmd.Flags().IntVar(&fetchPages, "pages", 1, "number of review pages to capture")
	rootCmd.AddCommand(fetchCmd)
}
