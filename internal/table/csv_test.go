package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "App,Rating,Installs\nFacebook,4.1,1000000\nSketchy,,\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"App", "Rating", "Installs"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "4.1", tbl.Rows[0].Get("Rating").Text())

	// Empty cells come back as null, not empty strings.
	assert.True(t, tbl.Rows[1].Get("Rating").IsNull())
	assert.True(t, tbl.Rows[1].Get("Installs").IsNull())
}

func TestReadCSV_RaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Rows[0].Get("c").IsNull())
}

func TestReadCSV_Empty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Columns)
}

func TestWriteCSV_NullRendersEmpty(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(Row{"a": String("x")})
	tbl.Append(Row{"a": Number(1.5), "b": String("y")})

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	assert.Equal(t, "a,b\nx,\n1.5,y\n", buf.String())
}

func TestWriteCSVFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "out.csv")

	tbl := New("a")
	tbl.Append(Row{"a": String("x")})
	require.NoError(t, tbl.WriteCSVFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nx\n", string(data))
}

func TestWriteCSVFile_BadTarget(t *testing.T) {
	// A file where a directory is expected makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	tbl := New("a")
	err := tbl.WriteCSVFile(filepath.Join(blocker, "nested", "out.csv"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrWriteTarget))
}
