// Package merge unions normalized per-platform tables into one
// analysis-ready table, tagging every row with its originating platform.
package merge

import (
	"go.uber.org/zap"

	"github.com/kasparro/market-intel-cli/internal/table"
)

// Platform provenance tags. Set before merge, never inferred during it.
const (
	PlatformGooglePlay = "GooglePlay"
	PlatformAppStore   = "AppStore"
)

// googleColumns is the canonical Google Play slice of the combined table.
var googleColumns = []string{"App_Name", "Category", "Rating", "Installs", "Size_MB", "Platform"}

// appleColumns is the canonical App Store slice of the combined table.
// userName stands in for App_Name: the review feed has no true app-name
// field, so the reviewer name is carried under that column. Lossy on
// purpose, documented here rather than hidden.
var appleColumns = []string{"App_Name", "Rating", "title", "Review_Text", "Last_Updated", "Platform"}

// PrepareGooglePlay renames a cleaned Play Store table to the canonical
// vocabulary and stamps its provenance tag.
func PrepareGooglePlay(t *table.Table) *table.Table {
	t.Rename(map[string]string{"App": "App_Name"})
	t.SetConstant("Platform", table.String(PlatformGooglePlay))
	return t.Select(googleColumns...)
}

// PrepareAppStore renames a cleaned review table to the canonical
// vocabulary and stamps its provenance tag.
func PrepareAppStore(t *table.Table) *table.Table {
	t.Rename(map[string]string{
		"userName": "App_Name",
		"score":    "Rating",
		"text":     "Review_Text",
		"updated":  "Last_Updated",
	})
	t.SetConstant("Platform", table.String(PlatformAppStore))
	return t.Select(appleColumns...)
}

// Combine stacks prepared tables row-wise. Pure concatenation: the output
// column set is the union of the inputs, no rows dropped or reordered, and
// every row keeps the provenance tag it arrived with.
func Combine(tables ...*table.Table) *table.Table {
	out := table.Concat(tables...)

	rows := 0
	for _, t := range tables {
		rows += t.Len()
	}
	zap.L().Info("datasets combined",
		zap.Int("sources", len(tables)),
		zap.Int("rows", rows),
		zap.Int("columns", len(out.Columns)),
	)
	return out
}
