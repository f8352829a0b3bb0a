// Package report renders the markdown insight report the dashboard links
// for download.
package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kasparro/market-intel-cli/internal/insights"
	"github.com/kasparro/market-intel-cli/internal/table"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// RenderMarket produces the markdown body for a market insight result.
// A fallback result renders the raw model text unedited.
func RenderMarket(stats insights.MarketStats, result *insights.MarketResult) string {
	var b strings.Builder
	b.WriteString("# AI-Powered Market Insights\n\n")
	printer.Fprintf(&b, "Dataset: %d apps (Google Play: %d, App Store: %d), average rating %.2f.\n\n",
		stats.TotalApps, stats.GoogleApps, stats.AppleApps, stats.AvgRating)

	if result.Fallback {
		b.WriteString(result.RawOutput)
		b.WriteString("\n")
		return b.String()
	}

	for _, item := range result.Insights {
		b.WriteString("- **Insight**: " + item.Insight + "\n")
		b.WriteString("  - Confidence: " + item.Confidence + "\n\n")
	}
	return b.String()
}

// WriteMarket writes the market report to path, creating parent
// directories and overwriting any existing file.
func WriteMarket(path string, stats insights.MarketStats, result *insights.MarketResult) error {
	body := RenderMarket(stats, result)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(table.ErrWriteTarget, "mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return eris.Wrapf(table.ErrWriteTarget, "write %s: %v", path, err)
	}
	return nil
}
