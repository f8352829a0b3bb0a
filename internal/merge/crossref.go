package merge

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/kasparro/market-intel-cli/internal/metrics"
	"github.com/kasparro/market-intel-cli/internal/table"
)

// CrossRefEntry pairs an app's listing name on each store.
type CrossRefEntry struct {
	Name       string `yaml:"name"`
	GooglePlay string `yaml:"google_play"`
	AppStore   string `yaml:"app_store"`
}

// CrossRef is the hand-authored table of known cross-store app
// correspondences. Matching is a static lookup, not fuzzy inference: the
// limitation is deliberate and visible.
type CrossRef struct {
	Apps []CrossRefEntry `yaml:"apps"`
}

// DefaultCrossRef is used when no correspondence file is configured.
func DefaultCrossRef() *CrossRef {
	return &CrossRef{Apps: []CrossRefEntry{
		{Name: "Facebook", GooglePlay: "Facebook", AppStore: "Facebook"},
		{Name: "Instagram", GooglePlay: "Instagram", AppStore: "Instagram"},
		{Name: "WhatsApp", GooglePlay: "WhatsApp Messenger", AppStore: "WhatsApp Messenger"},
		{Name: "Spotify", GooglePlay: "Spotify Music", AppStore: "Spotify - Music and Podcasts"},
		{Name: "Netflix", GooglePlay: "Netflix", AppStore: "Netflix"},
	}}
}

// LoadCrossRef reads a correspondence table from a YAML file.
func LoadCrossRef(path string) (*CrossRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "crossref: read %s", path)
	}

	var xref CrossRef
	if err := yaml.Unmarshal(data, &xref); err != nil {
		return nil, eris.Wrapf(err, "crossref: parse %s", path)
	}
	return &xref, nil
}

// CrossPlatform builds the per-app cross-store view from the prepared
// per-platform tables: average rating on each store plus an availability
// flag. Apps absent from a store contribute null for that store's rating.
func CrossPlatform(google, apple *table.Table, xref *CrossRef) *table.Table {
	out := table.New("App_Name", "Google_Rating", "Apple_Rating", "Available_On_Both_Stores")

	for _, entry := range xref.Apps {
		gRating, gRows := storeRating(google, entry.GooglePlay)
		aRating, aRows := storeRating(apple, entry.AppStore)

		row := table.Row{"App_Name": table.String(entry.Name)}
		if gRows > 0 {
			row["Google_Rating"] = table.Number(gRating)
		}
		if aRows > 0 {
			row["Apple_Rating"] = table.Number(aRating)
		}
		both := 0.0
		if gRows > 0 && aRows > 0 {
			both = 1
		}
		row["Available_On_Both_Stores"] = table.Number(both)

		out.Append(row)
	}

	return out
}

// storeRating averages the Rating column over rows whose App_Name matches.
func storeRating(t *table.Table, appName string) (float64, int) {
	matched := table.New(t.Columns...)
	for _, r := range t.Rows {
		if r.Get("App_Name").Text() == appName {
			matched.Append(r)
		}
	}
	return metrics.Average(matched, "Rating")
}
