// Package insights turns aggregate dataset statistics into narrative
// insight records via a pluggable language model, treating the model's
// reply as untrusted text: fenced JSON is unwrapped, and anything that
// still fails to parse is preserved verbatim under a fallback key instead
// of failing the run.
package insights

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// FallbackKey is the well-known key raw model output is stored under when
// the reply does not parse as the requested JSON shape.
const FallbackKey = "raw_output"

// Insight is one narrative insight with its confidence label
// (High, Medium, or Low). Both fields are opaque, untrusted model text.
type Insight struct {
	Insight    string `json:"insight"`
	Confidence string `json:"confidence"`
}

// MarketResult holds the parsed market insights, or the raw reply when
// parsing failed.
type MarketResult struct {
	Insights  []Insight
	RawOutput string
	Fallback  bool
}

// MarshalJSON writes the insight array, or {"raw_output": ...} on fallback.
func (r MarketResult) MarshalJSON() ([]byte, error) {
	if r.Fallback {
		return json.Marshal(map[string]string{FallbackKey: r.RawOutput})
	}
	return json.Marshal(r.Insights)
}

// D2CDocument is the structured creative package requested from the model.
type D2CDocument struct {
	Insights            []Insight `json:"insights"`
	AdHeadlines         []string  `json:"ad_headlines"`
	SEODescriptions     []string  `json:"seo_descriptions"`
	ProductDescriptions []string  `json:"product_descriptions"`
}

// D2CResult holds the parsed D2C document, or the raw reply when parsing
// failed.
type D2CResult struct {
	Document  D2CDocument
	RawOutput string
	Fallback  bool
}

// MarshalJSON writes the document, or {"raw_output": ...} on fallback.
func (r D2CResult) MarshalJSON() ([]byte, error) {
	if r.Fallback {
		return json.Marshal(map[string]string{FallbackKey: r.RawOutput})
	}
	return json.Marshal(r.Document)
}

// Market generates insight records for the combined cross-platform table.
// Transport errors abort; a malformed-but-received reply degrades to the
// raw-text fallback.
func Market(ctx context.Context, llm LLM, t *table.Table) (*MarketResult, error) {
	stats := ComputeMarketStats(t)
	reply, err := llm.Complete(ctx, BuildMarketPrompt(stats))
	if err != nil {
		return nil, eris.Wrap(err, "insights: market completion")
	}

	result := &MarketResult{RawOutput: reply}
	cleaned := StripMarkdownFence(reply)
	if err := json.Unmarshal([]byte(cleaned), &result.Insights); err != nil {
		zap.L().Warn("market insights reply did not parse, keeping raw text", zap.Error(err))
		result.Fallback = true
		result.Insights = nil
	}
	return result, nil
}

// D2C generates the creative package for the cleaned D2C table.
func D2C(ctx context.Context, llm LLM, t *table.Table) (*D2CResult, error) {
	stats := ComputeD2CStats(t)
	reply, err := llm.Complete(ctx, BuildD2CPrompt(stats))
	if err != nil {
		return nil, eris.Wrap(err, "insights: d2c completion")
	}

	result := &D2CResult{RawOutput: reply}
	cleaned := StripMarkdownFence(reply)
	if err := json.Unmarshal([]byte(cleaned), &result.Document); err != nil {
		zap.L().Warn("d2c insights reply did not parse, keeping raw text", zap.Error(err))
		result.Fallback = true
		result.Document = D2CDocument{}
	}
	return result, nil
}

// SaveJSON persists any result as indented JSON, creating parent
// directories and overwriting an existing file.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "insights: marshal json")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(table.ErrWriteTarget, "mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(table.ErrWriteTarget, "write %s: %v", path, err)
	}
	return nil
}
