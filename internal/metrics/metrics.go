// Package metrics derives ratio-based marketing metrics from raw counters.
package metrics

import (
	"github.com/kasparro/market-intel-cli/internal/table"
)

// derivation defines one ratio metric: out = num / den.
type derivation struct {
	out string
	num string
	den string
}

// d2cDerivations are the funnel metrics computed on the cleaned D2C table.
var d2cDerivations = []derivation{
	{out: "cac", num: "spend_usd", den: "installs"},
	{out: "roas", num: "revenue_usd", den: "spend_usd"},
	{out: "ctr", num: "clicks", den: "impressions"},
	{out: "retention_rate", num: "repeat_purchase", den: "first_purchase"},
}

// SafeRatio divides num by den with the zero-as-sentinel policy: a
// denominator of zero or less yields 0, never an error, NaN, or Inf.
// Downstream averages stay computable without per-row null handling; the
// downward bias on aggregate means is accepted for parity with the data
// this pipeline replaces.
func SafeRatio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// ComputeD2C appends cac, roas, ctr, and retention_rate columns to a
// cleaned D2C table. Cells that are missing or non-numeric count as zero,
// matching the zero-fill the normalizer already applied.
func ComputeD2C(t *table.Table) *table.Table {
	for _, d := range d2cDerivations {
		t.AddColumn(d.out)
		for _, r := range t.Rows {
			num, _ := r.Get(d.num).Float()
			den, _ := r.Get(d.den).Float()
			r[d.out] = table.Number(SafeRatio(num, den))
		}
	}
	return t
}

// Average returns the mean of the parseable numeric values in col,
// skipping nulls and junk, plus the count of values that contributed.
func Average(t *table.Table, col string) (float64, int) {
	var sum float64
	var n int
	for _, r := range t.Rows {
		if f, ok := r.Get(col).Float(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
