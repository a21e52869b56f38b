package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"docextract/internal/domain"
)

const defaultSheet = "Sheet1"

// XLSX renders tables as a workbook with one sheet per table. An empty
// table list yields a workbook with a single empty "Tables" sheet.
func XLSX(tables domain.Tables) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	if len(tables) == 0 {
		if err := f.SetSheetName(defaultSheet, "Tables"); err != nil {
			return nil, fmt.Errorf("xlsx rename sheet: %w", err)
		}
	}

	for i, t := range tables {
		sheet := fmt.Sprintf("Table %d", i+1)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("xlsx rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("xlsx new sheet: %w", err)
		}

		row := 1
		if len(t.Headers) > 0 {
			if err := writeRow(f, sheet, row, t.Headers); err != nil {
				return nil, err
			}
			last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
			_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
			row++
		}
		for _, cells := range t.Rows {
			if err := writeRow(f, sheet, row, cells); err != nil {
				return nil, err
			}
			row++
		}

		if width := tableWidth(t); width > 0 {
			lastCol, _ := excelize.ColumnNumberToName(width)
			_ = f.SetColWidth(sheet, "A", lastCol, 20)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}
