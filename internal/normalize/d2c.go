package normalize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// D2C cleans the direct-to-consumer marketing sheet: canonicalize headers
// to lower_snake_case, dedupe, and zero-fill nulls so the downstream ratio
// math never sees a missing counter.
func D2C(t *table.Table) *table.Table {
	before := t.Len()

	mapping := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		mapping[c] = CanonicalColumn(c)
	}
	t.Rename(mapping)

	t.Dedupe()

	for _, c := range t.Columns {
		t.Apply(c, zeroFill)
	}

	zap.L().Info("d2c sheet cleaned",
		zap.Int("rows_in", before),
		zap.Int("rows_out", t.Len()),
	)
	return t
}

// CanonicalColumn lowercases a header and replaces spaces with underscores.
func CanonicalColumn(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
}

func zeroFill(v table.Value) table.Value {
	if v.IsNull() {
		return table.Number(0)
	}
	return v
}
