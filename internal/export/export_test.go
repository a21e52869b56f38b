package export_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docextract/internal/domain"
	"docextract/internal/export"
)

func sampleTables() domain.Tables {
	return domain.Tables{
		{
			Headers: []string{"Item", "Qty", "Price"},
			Rows:    [][]string{{"Widget", "2", "9.99"}, {"Gadget", "1"}},
		},
		{
			Headers: []string{"Name", "Phone"},
			Rows:    [][]string{{"Jane, Doe", "+1 555 0100"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
		err  bool
	}{
		{"", export.FormatXLSX, false},
		{"xlsx", export.FormatXLSX, false},
		{" XLSX ", export.FormatXLSX, false},
		{"csv", export.FormatCSV, false},
		{"Csv", export.FormatCSV, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, export.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", export.FormatCSV.ContentType())
	assert.Contains(t, export.FormatXLSX.ContentType(), "spreadsheetml")
}

func TestRender_CSV(t *testing.T) {
	data, err := export.Render(export.FormatCSV, sampleTables())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, export.BOM))

	assert.Equal(t,
		"Item,Qty,Price\nWidget,2,9.99\nGadget,1,\n\nName,Phone\n\"Jane, Doe\",+1 555 0100\n",
		string(data[len(export.BOM):]))
}

func TestRender_CSVEmpty(t *testing.T) {
	data, err := export.Render(export.FormatCSV, domain.Tables{})
	require.NoError(t, err)
	assert.Equal(t, export.BOM, data)
}

func TestRender_XLSX(t *testing.T) {
	data, err := export.Render(export.FormatXLSX, sampleTables())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Table 1", "Table 2"}, f.GetSheetList())

	rows, err := f.GetRows("Table 1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Item", "Qty", "Price"}, rows[0])
	assert.Equal(t, []string{"Widget", "2", "9.99"}, rows[1])
	assert.Equal(t, []string{"Gadget", "1"}, rows[2])

	v, err := f.GetCellValue("Table 2", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jane, Doe", v)
}

func TestRender_XLSXEmpty(t *testing.T) {
	data, err := export.XLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Tables"}, f.GetSheetList())
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := export.Render(export.Format("pdf"), sampleTables())
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "invoice", "invoice"},
		{"spaces", "my scan 01", "my_scan_01"},
		{"special chars", "a/b\\c:d*e", "a_b_c_d_e"},
		{"collapse", "a   ---  b", "a_---_b"},
		{"trim underscores", "  doc  ", "doc"},
		{"unicode", "résumé", "r_sum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 150)
	assert.Len(t, export.SanitizeFilename(string(long)), 100)
}

func TestBuildFilename(t *testing.T) {
	date := time.Now().Format("2006-01-02")
	assert.Equal(t, fmt.Sprintf("scan_01_tables_%s.xlsx", date), export.BuildFilename("scan 01.pdf", export.FormatXLSX))
	assert.Equal(t, fmt.Sprintf("document_tables_%s.csv", date), export.BuildFilename("", export.FormatCSV))
}
