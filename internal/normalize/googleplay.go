// Package normalize cleans each raw source into its canonical table: exact
// duplicates removed, rows missing required fields dropped, and
// source-specific unit and type coercion applied cell by cell.
package normalize

import (
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// GooglePlayRequired are the columns a Play Store row must carry to be kept.
var GooglePlayRequired = []string{"App", "Category", "Rating"}

// GooglePlay cleans a raw Google Play export in place:
// dedupe → drop rows missing App/Category/Rating → coerce Installs, Rating →
// derive Size_MB from Size.
func GooglePlay(t *table.Table) *table.Table {
	before := t.Len()

	t.Dedupe()
	t.DropMissing(GooglePlayRequired...)

	if t.HasColumn("Installs") {
		t.Apply("Installs", ParseInstalls)
	}

	if t.HasColumn("Size") {
		t.AddColumn("Size_MB")
		for _, r := range t.Rows {
			r["Size_MB"] = SizeToMB(r.Get("Size"))
		}
	}

	t.Apply("Rating", ParseNumeric)
	// Rating nulls can reappear if the cell held junk text.
	t.DropMissing("Rating")

	zap.L().Info("google play cleaned",
		zap.Int("rows_in", before),
		zap.Int("rows_out", t.Len()),
	)
	return t
}
