package insights

import (
	"fmt"
	"strings"
)

// BuildMarketPrompt renders the market-analysis prompt from aggregate
// stats. The model is asked for a bare JSON array; the fence stripper
// handles the cases where it fences the reply anyway.
func BuildMarketPrompt(s MarketStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing a combined dataset of %d apps (Google Play: %d, App Store: %d).\n",
		s.TotalApps, s.GoogleApps, s.AppleApps)
	fmt.Fprintf(&b, "Avg rating = %.2f.\n\n", s.AvgRating)
	b.WriteString(`Generate 3 market insights:
- Trends
- Competitor performance
- Recommendations

For each, assign confidence as High, Medium, or Low.
Return ONLY a valid JSON array with keys: insight, confidence.
Example:
[
  {"insight": "Sample text", "confidence": "High"},
  {"insight": "Sample text 2", "confidence": "Medium"}
]
`)
	return b.String()
}

// BuildD2CPrompt renders the D2C creative-generation prompt.
func BuildD2CPrompt(s D2CStats) string {
	var b strings.Builder
	b.WriteString("You are analyzing a synthetic D2C marketing dataset.\nKey averages:\n")
	fmt.Fprintf(&b, "- CAC = $%.2f\n", s.AvgCAC)
	fmt.Fprintf(&b, "- ROAS = %.2fx\n", s.AvgROAS)
	fmt.Fprintf(&b, "- Conversion Rate = %.2f%%\n", s.AvgConversion*100)
	fmt.Fprintf(&b, "- CTR = %.2f%%\n", s.AvgCTR*100)
	fmt.Fprintf(&b, "- Retention Rate = %.2f%%\n\n", s.AvgRetention*100)
	b.WriteString(`Generate:
1. 3 key market insights (with confidence High/Medium/Low).
2. 3 ad headlines (short, catchy).
3. 3 SEO meta descriptions.
4. 3 short product descriptions.

IMPORTANT: Return ONLY valid JSON without any markdown formatting or code blocks.
Example format:
{
    "insights": [
        {"insight": "text", "confidence": "High"},
        {"insight": "text", "confidence": "Medium"},
        {"insight": "text", "confidence": "Low"}
    ],
    "ad_headlines": ["headline1", "headline2", "headline3"],
    "seo_descriptions": ["desc1", "desc2", "desc3"],
    "product_descriptions": ["prod1", "prod2", "prod3"]
}
`)
	return b.String()
}
