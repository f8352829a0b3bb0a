package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/market-intel-cli/internal/insights"
)

func TestRenderMarket(t *testing.T) {
	stats := insights.MarketStats{TotalApps: 9660, GoogleApps: 9360, AppleApps: 300, AvgRating: 4.19}
	result := &insights.MarketResult{Insights: []insights.Insight{
		{Insight: "Ratings cluster above 4", Confidence: "High"},
	}}

	body := RenderMarket(stats, result)

	assert.Contains(t, body, "# AI-Powered Market Insights")
	assert.Contains(t, body, "9,660 apps")
	assert.Contains(t, body, "average rating 4.19")
	assert.Contains(t, body, "- **Insight**: Ratings cluster above 4")
	assert.Contains(t, body, "Confidence: High")
}

func TestRenderMarket_Fallback(t *testing.T) {
	result := &insights.MarketResult{Fallback: true, RawOutput: "The model said something unstructured."}

	body := RenderMarket(insights.MarketStats{}, result)

	assert.Contains(t, body, "The model said something unstructured.")
	assert.NotContains(t, body, "**Insight**")
}

func TestWriteMarket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "insights_report.md")

	err := WriteMarket(path, insights.MarketStats{TotalApps: 1}, &insights.MarketResult{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# AI-Powered Market Insights")
}
