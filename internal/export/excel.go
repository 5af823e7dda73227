// Package export renders the weekly report artifact to an xlsx workbook and
// writes it under the documents directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// dataStartRow is where the tabular part begins; rows 1-3 carry the header
// block and row 4 stays blank to separate the two.
const dataStartRow = 5

// Render builds the workbook: one sheet with the header lines in rows 1-3
// and the column headers plus data rows starting at dataStartRow.
func Render(report domain.WeeklyReport, sheetTitle string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetTitle); err != nil {
		return nil, err
	}

	for i, line := range report.HeaderLines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetTitle, cell, line); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, sheetTitle, dataStartRow, report.Columns); err != nil {
		return nil, err
	}
	for i, row := range report.Rows {
		if err := setRow(f, sheetTitle, dataStartRow+1+i, row.Cells()); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// Filename names the report file after the week it covers.
func Filename(weekStart time.Time) string {
	return fmt.Sprintf("attendance_report_%s.xlsx", weekStart.Format("2006-01-02"))
}

// WriteFile saves the workbook under dir, creating the directory if needed,
// and returns the full path.
func WriteFile(f *excelize.File, dir string, weekStart time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(weekStart))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
