package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasparro/market-intel-cli/internal/table"
)

func mustReadCSV(t *testing.T, in string) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	return tbl
}

func TestGooglePlay(t *testing.T) {
	in := strings.Join([]string{
		"App,Category,Rating,Installs,Size",
		"Facebook,SOCIAL,4.1,\"1,000,000,000+\",19M",
		"Facebook,SOCIAL,4.1,\"1,000,000,000+\",19M",
		"Mystery,,4.0,100+,5M",
		"Tiny,TOOLS,3.5,Free,512k",
		"Junk,TOOLS,not-a-number,10+,1M",
	}, "\n")

	out := GooglePlay(mustReadCSV(t, in))

	// Duplicate dropped, missing-Category row dropped, junk-Rating row
	// dropped after coercion.
	require.Equal(t, 2, out.Len())

	fb := out.Rows[0]
	installs, ok := fb.Get("Installs").Float()
	require.True(t, ok)
	assert.Equal(t, float64(1000000000), installs)

	size, ok := fb.Get("Size_MB").Float()
	require.True(t, ok)
	assert.Equal(t, 19.0, size)

	rating := fb.Get("Rating")
	assert.True(t, rating.IsNumber())

	tiny := out.Rows[1]
	assert.True(t, tiny.Get("Installs").IsNull(), `"Free" coerces to null`)
	size, ok = tiny.Get("Size_MB").Float()
	require.True(t, ok)
	assert.Equal(t, 0.5, size)
}

func TestGooglePlay_RequiredColumnsNeverNull(t *testing.T) {
	in := strings.Join([]string{
		"App,Category,Rating",
		"A,TOOLS,4.0",
		",TOOLS,4.0",
		"B,,4.0",
		"C,TOOLS,",
	}, "\n")

	out := GooglePlay(mustReadCSV(t, in))

	require.Equal(t, 1, out.Len())
	for _, r := range out.Rows {
		for _, c := range GooglePlayRequired {
			assert.False(t, r.Get(c).IsNull(), "column %s", c)
		}
	}
}

func TestGooglePlay_Idempotent(t *testing.T) {
	in := strings.Join([]string{
		"App,Category,Rating,Installs,Size",
		"A,TOOLS,4.0,\"1,000+\",19M",
		"A,TOOLS,4.0,\"1,000+\",19M",
	}, "\n")

	once := GooglePlay(mustReadCSV(t, in))
	rows := once.Len()

	// Cleaning an already-clean table changes nothing.
	twice := GooglePlay(once)
	assert.Equal(t, rows, twice.Len())
	installs, ok := twice.Rows[0].Get("Installs").Float()
	require.True(t, ok)
	assert.Equal(t, 1000.0, installs)
}
