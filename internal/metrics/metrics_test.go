package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/market-intel-cli/internal/table"
)

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 2.0, SafeRatio(100, 50))
	assert.Equal(t, 0.0, SafeRatio(100, 0))
	assert.Equal(t, 0.0, SafeRatio(100, -1))
	assert.Equal(t, 0.0, SafeRatio(0, 0))
}

func TestComputeD2C(t *testing.T) {
	tbl := table.New("campaign", "spend_usd", "installs", "revenue_usd", "clicks", "impressions", "first_purchase", "repeat_purchase")
	tbl.Append(table.Row{
		"campaign":        table.String("summer"),
		"spend_usd":       table.Number(100),
		"installs":        table.Number(50),
		"revenue_usd":     table.Number(300),
		"clicks":          table.Number(10),
		"impressions":     table.Number(1000),
		"first_purchase":  table.Number(20),
		"repeat_purchase": table.Number(5),
	})
	tbl.Append(table.Row{
		"campaign":        table.String("dead"),
		"spend_usd":       table.Number(100),
		"installs":        table.Number(0),
		"revenue_usd":     table.Number(0),
		"clicks":          table.Number(0),
		"impressions":     table.Number(0),
		"first_purchase":  table.Number(0),
		"repeat_purchase": table.Number(0),
	})

	out := ComputeD2C(tbl)

	for _, c := range []string{"cac", "roas", "ctr", "retention_rate"} {
		assert.True(t, out.HasColumn(c), "column %s", c)
	}

	summer := out.Rows[0]
	cac, _ := summer.Get("cac").Float()
	roas, _ := summer.Get("roas").Float()
	ctr, _ := summer.Get("ctr").Float()
	retention, _ := summer.Get("retention_rate").Float()
	assert.Equal(t, 2.0, cac)
	assert.Equal(t, 3.0, roas)
	assert.Equal(t, 0.01, ctr)
	assert.Equal(t, 0.25, retention)

	// A campaign with zero denominators gets zeros, not NaN or Inf.
	dead := out.Rows[1]
	for _, c := range []string{"cac", "roas", "ctr", "retention_rate"} {
		f, ok := dead.Get(c).Float()
		require.True(t, ok, "column %s", c)
		assert.Equal(t, 0.0, f, "column %s", c)
	}
}

func TestAverage(t *testing.T) {
	tbl := table.New("rating")
	tbl.Append(table.Row{"rating": table.Number(4)})
	tbl.Append(table.Row{"rating": table.String("5")})
	tbl.Append(table.Row{"rating": table.String("junk")})
	tbl.Append(table.Row{})

	avg, n := Average(tbl, "rating")
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, n)

	avg, n = Average(tbl, "absent")
	assert.Equal(t, 0.0, avg)
	assert.Equal(t, 0, n)
}
