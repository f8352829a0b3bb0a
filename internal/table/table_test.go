package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(pairs ...any) Row {
	r := make(Row, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		r[pairs[i].(string)] = pairs[i+1].(Value)
	}
	return r
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(row("a", String("x"), "b", Number(1)))
	tbl.Append(row("a", String("y"), "b", Number(2)))
	tbl.Append(row("a", String("x"), "b", Number(1)))

	tbl.Dedupe()

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "x", tbl.Rows[0].Get("a").Text())
	assert.Equal(t, "y", tbl.Rows[1].Get("a").Text())
}

func TestDedupe_Idempotent(t *testing.T) {
	tbl := New("a")
	tbl.Append(row("a", String("x")))
	tbl.Append(row("a", String("x")))
	tbl.Append(row("a", String("y")))

	tbl.Dedupe()
	first := append([]Row(nil), tbl.Rows...)

	tbl.Dedupe()
	assert.Equal(t, first, tbl.Rows)
}

func TestDedupe_DistinguishesKindAndNull(t *testing.T) {
	tbl := New("a")
	tbl.Append(row("a", String("1")))
	tbl.Append(row("a", Number(1)))
	tbl.Append(row("a", Null()))
	tbl.Append(Row{})

	tbl.Dedupe()

	// "1" (string), 1 (number), and null are three distinct rows; the
	// absent cell equals the explicit null.
	assert.Equal(t, 3, tbl.Len())
}

func TestDropMissing(t *testing.T) {
	tbl := New("App", "Category", "Rating")
	tbl.Append(row("App", String("X"), "Category", String("Tools"), "Rating", Number(4.5)))
	tbl.Append(row("App", String("Y"), "Rating", Number(3)))
	tbl.Append(row("Category", String("Games"), "Rating", Number(4)))

	tbl.DropMissing("App", "Category", "Rating")

	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "X", tbl.Rows[0].Get("App").Text())
}

func TestRename(t *testing.T) {
	tbl := New("App", "score")
	tbl.Append(row("App", String("X"), "score", Number(4)))

	tbl.Rename(map[string]string{"App": "App_Name", "score": "Rating"})

	assert.Equal(t, []string{"App_Name", "Rating"}, tbl.Columns)
	assert.Equal(t, "X", tbl.Rows[0].Get("App_Name").Text())
	assert.True(t, tbl.Rows[0].Get("App").IsNull())
}

func TestSelect_MissingColumnContributesNull(t *testing.T) {
	tbl := New("a")
	tbl.Append(row("a", String("x")))

	out := tbl.Select("a", "b")

	assert.Equal(t, []string{"a", "b"}, out.Columns)
	require.Equal(t, 1, out.Len())
	assert.True(t, out.Rows[0].Get("b").IsNull())
}

func TestConcat_ColumnUnionAndMembership(t *testing.T) {
	left := New("a", "b")
	left.Append(row("a", String("1"), "b", String("2")))

	right := New("b", "c")
	right.Append(row("b", String("3"), "c", String("4")))

	ab := Concat(left, right)
	ba := Concat(right, left)

	// Column set is the union of inputs.
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ab.Columns)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ba.Columns)

	// Order of unioned sources changes row order, never membership.
	require.Equal(t, 2, ab.Len())
	require.Equal(t, 2, ba.Len())
	assert.ElementsMatch(t, ab.Rows, ba.Rows)

	// A source missing a column contributes null there.
	assert.True(t, ab.Rows[1].Get("a").IsNull())
	assert.True(t, ab.Rows[0].Get("c").IsNull())
}

func TestConcat_NeverDropsRows(t *testing.T) {
	left := New("a")
	left.Append(row("a", String("same")))
	right := New("a")
	right.Append(row("a", String("same")))

	out := Concat(left, right)

	// Concatenation is not dedup.
	assert.Equal(t, 2, out.Len())
}

func TestApplyAndSetConstant(t *testing.T) {
	tbl := New("n")
	tbl.Append(row("n", String("2")))

	tbl.Apply("n", func(v Value) Value {
		f, _ := v.Float()
		return Number(f * 2)
	})
	tbl.SetConstant("Platform", String("GooglePlay"))

	f, ok := tbl.Rows[0].Get("n").Float()
	require.True(t, ok)
	assert.Equal(t, 4.0, f)
	assert.Equal(t, "GooglePlay", tbl.Rows[0].Get("Platform").Text())
	assert.True(t, tbl.HasColumn("Platform"))
}
