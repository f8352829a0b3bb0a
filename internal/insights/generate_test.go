package insights

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// stubLLM returns a canned reply and records the prompt it received.
type stubLLM struct {
	reply  string
	err    error
	prompt string
}

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func combinedFixture() *table.Table {
	t := table.New("App_Name", "Rating", "Platform")
	t.Append(table.Row{"App_Name": table.String("Facebook"), "Rating": table.Number(4), "Platform": table.String("GooglePlay")})
	t.Append(table.Row{"App_Name": table.String("alice"), "Rating": table.Number(5), "Platform": table.String("AppStore")})
	return t
}

func TestMarket_ParsesFencedReply(t *testing.T) {
	llm := &stubLLM{reply: "```json\n[{\"insight\": \"growth\", \"confidence\": \"High\"}]\n```"}

	result, err := Market(context.Background(), llm, combinedFixture())
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, "growth", result.Insights[0].Insight)
	assert.Equal(t, "High", result.Insights[0].Confidence)

	// The prompt carries the aggregate stats.
	assert.Contains(t, llm.prompt, "2 apps")
	assert.Contains(t, llm.prompt, "Avg rating = 4.50")
}

func TestMarket_FallbackKeepsRawText(t *testing.T) {
	llm := &stubLLM{reply: "The market looks strong overall."}

	result, err := Market(context.Background(), llm, combinedFixture())
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Empty(t, result.Insights)
	assert.Equal(t, "The market looks strong overall.", result.RawOutput)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "The market looks strong overall.", m[FallbackKey])
}

func TestMarket_TransportErrorAborts(t *testing.T) {
	llm := &stubLLM{err: eris.New("connection refused")}

	_, err := Market(context.Background(), llm, combinedFixture())
	assert.Error(t, err)
}

func TestD2C_ParsesDocument(t *testing.T) {
	doc := D2CDocument{
		Insights:            []Insight{{Insight: "cut spend", Confidence: "Medium"}},
		AdHeadlines:         []string{"h1", "h2", "h3"},
		SEODescriptions:     []string{"s1", "s2", "s3"},
		ProductDescriptions: []string{"p1", "p2", "p3"},
	}
	reply, err := json.Marshal(doc)
	require.NoError(t, err)
	llm := &stubLLM{reply: string(reply)}

	tbl := table.New("cac", "roas")
	tbl.Append(table.Row{"cac": table.Number(2), "roas": table.Number(3)})

	result, err := D2C(context.Background(), llm, tbl)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	assert.Equal(t, doc, result.Document)
	assert.Contains(t, llm.prompt, "CAC = $2.00")
	assert.Contains(t, llm.prompt, "ROAS = 3.00x")
}

func TestD2C_Fallback(t *testing.T) {
	llm := &stubLLM{reply: "no json here"}

	tbl := table.New("cac")
	result, err := D2C(context.Background(), llm, tbl)
	require.NoError(t, err)
	assert.True(t, result.Fallback)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw_output": "no json here"}`, string(data))
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "insights.json")
	result := &MarketResult{Insights: []Insight{{Insight: "x", Confidence: "Low"}}}

	require.NoError(t, SaveJSON(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed []Insight
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, "x", parsed[0].Insight)
}
