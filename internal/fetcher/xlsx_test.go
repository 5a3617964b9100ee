package fetcher

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string, order ...string) *xlsx.File {
	t.Helper()
	f := xlsx.NewFile()
	for _, name := range order {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range sheets[name] {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	return f
}

func TestReadXLSX_File(t *testing.T) {
	f := buildWorkbook(t, map[string][][]string{
		"Audit": {
			{"Entreprise", "Ville", "Facebook"},
			{"Alpha", "Lyon", "OUI"},
			{"Bravo", "Paris", "NON"},
		},
	}, "Audit")
	path := filepath.Join(t.TempDir(), "audit.xlsx")
	require.NoError(t, f.Save(path))

	table, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Entreprise", "Ville", "Facebook"}, table.Header)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"Bravo", "Paris", "NON"}, table.Records[1])
}

func TestReadXLSXBytes_SheetSelection(t *testing.T) {
	f := buildWorkbook(t, map[string][][]string{
		"Notes": {{"ignored"}},
		"Audit": {{"Entreprise"}, {"Alpha"}},
	}, "Notes", "Audit")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	byName, err := ReadXLSXBytes(buf.Bytes(), XLSXOptions{SheetName: "Audit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Entreprise"}, byName.Header)
	assert.Equal(t, [][]string{{"Alpha"}}, byName.Records)

	byIndex, err := ReadXLSXBytes(buf.Bytes(), XLSXOptions{SheetIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, byName, byIndex)

	_, err = ReadXLSXBytes(buf.Bytes(), XLSXOptions{SheetName: "Missing"})
	assert.ErrorContains(t, err, "not found")

	_, err = ReadXLSXBytes(buf.Bytes(), XLSXOptions{SheetIndex: 5})
	assert.ErrorContains(t, err, "out of range")
}

func TestReadXLSXBytes_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSXBytes([]byte("Entreprise,Ville\n"), XLSXOptions{})
	assert.Error(t, err)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	assert.ErrorContains(t, err, "xlsx: open file")
}
