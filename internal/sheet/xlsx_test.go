package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestReadXLSX_Basic(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{
		{"Name", "Age", "City"},
		{"Alice", "30", "NYC"},
		{"Bob", "25", "LA"},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Age", "City"}, rows[0])
	assert.Equal(t, []string{"Alice", "30", "NYC"}, rows[1])
	assert.Equal(t, []string{"Bob", "25", "LA"}, rows[2])
}

func TestReadXLSX_ColumnSelection(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{
		{"a", "b", "c", "d"},
		{"1", "2", "3"},
	})

	rows, err := ReadXLSX(path, XLSXOptions{Columns: []int{0, 2, 3}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "c", "d"}, rows[0])
	// Short rows pad selected columns past the end with "".
	assert.Equal(t, []string{"1", "3", ""}, rows[1])
}

func TestReadXLSX_SkipsBlankRowsAndTrims(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{
		{" Header1 ", "Header2"},
		{"", ""},
		{"a", " b "},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Header1", "Header2"}, rows[0])
	assert.Equal(t, []string{"a", "b"}, rows[1])
}

func TestReadXLSX_SkipRows(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{
		{"Title"},
		{"Header1", "Header2"},
		{"a", "b"},
	})

	rows, err := ReadXLSX(path, XLSXOptions{SkipRows: 1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Header1", "Header2"}, rows[0])
}

func TestReadXLSX_SheetName(t *testing.T) {
	f := xlsx.NewFile()
	first, err := f.AddSheet("First")
	require.NoError(t, err)
	first.AddRow().AddCell().SetString("a")
	second, err := f.AddSheet("Second")
	require.NoError(t, err)
	second.AddRow().AddCell().SetString("x")
	path := filepath.Join(t.TempDir(), "two.xlsx")
	require.NoError(t, f.Save(path))

	rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}}, rows)

	rows, err = ReadXLSX(path, XLSXOptions{SheetIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}}, rows)
}

func TestReadXLSX_SheetNameNotFound(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{{"a"}})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := writeTestXLSX(t, t.TempDir(), "test.xlsx", [][]string{{"a"}})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_NotASpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ReadXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet: open")
}
