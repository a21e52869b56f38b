package export

import (
	"encoding/csv"
	"io"

	"docextract/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting extracted tables.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteTables writes each table as its header row followed by its data rows,
// with a blank record between consecutive tables. Rows shorter than the
// header are padded so every record of a table has the same width.
func (w *CSVWriter) WriteTables(tables domain.Tables) error {
	for i, t := range tables {
		if i > 0 {
			if err := w.csv.Write([]string{""}); err != nil {
				return err
			}
		}
		width := tableWidth(t)
		if len(t.Headers) > 0 {
			if err := w.csv.Write(pad(t.Headers, width)); err != nil {
				return err
			}
		}
		for _, row := range t.Rows {
			if err := w.csv.Write(pad(row, width)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func tableWidth(t domain.Table) int {
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func pad(cells []string, width int) []string {
	if len(cells) >= width {
		return cells
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}
