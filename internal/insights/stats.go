package insights

import (
	"github.com/kasparro/market-intel-cli/internal/merge"
	"github.com/kasparro/market-intel-cli/internal/metrics"
	"github.com/kasparro/market-intel-cli/internal/table"
)

// MarketStats are the aggregate figures fed into the market prompt.
type MarketStats struct {
	TotalApps  int
	GoogleApps int
	AppleApps  int
	AvgRating  float64
}

// ComputeMarketStats aggregates the combined cross-platform table.
func ComputeMarketStats(t *table.Table) MarketStats {
	s := MarketStats{TotalApps: t.Len()}
	for _, r := range t.Rows {
		switch r.Get("Platform").Text() {
		case merge.PlatformGooglePlay:
			s.GoogleApps++
		case merge.PlatformAppStore:
			s.AppleApps++
		}
	}
	s.AvgRating, _ = metrics.Average(t, "Rating")
	return s
}

// D2CStats are the aggregate figures fed into the D2C prompt. Rate fields
// are fractions; the prompt renders them as percentages.
type D2CStats struct {
	AvgCAC        float64
	AvgROAS       float64
	AvgConversion float64
	AvgCTR        float64
	AvgRetention  float64
}

// ComputeD2CStats averages the derived funnel metrics.
func ComputeD2CStats(t *table.Table) D2CStats {
	var s D2CStats
	s.AvgCAC, _ = metrics.Average(t, "cac")
	s.AvgROAS, _ = metrics.Average(t, "roas")
	s.AvgConversion, _ = metrics.Average(t, "conversion_rate")
	s.AvgCTR, _ = metrics.Average(t, "ctr")
	s.AvgRetention, _ = metrics.Average(t, "retention_rate")
	return s
}
