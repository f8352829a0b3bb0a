package normalize

import (
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// appStoreColumns is the projection kept from the raw review capture; the
// API returns many more fields than the analysis needs.
var appStoreColumns = []string{"id", "userName", "version", "score", "title", "text", "updated"}

// AppStore cleans a raw App Store review capture: project to the analysis
// columns, coerce the score and the review timestamp.
func AppStore(t *table.Table) *table.Table {
	before := t.Len()

	out := t.Select(appStoreColumns...)
	out.Apply("score", ParseNumeric)
	out.Apply("updated", ParseTimestamp)

	zap.L().Info("app store reviews cleaned",
		zap.Int("rows_in", before),
		zap.Int("rows_out", out.Len()),
	)
	return out
}
