// Package report derives the weekly report from an attendance snapshot.
// Everything here is a pure transform; rendering to a file format lives in
// the export package.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
)

const Title = "Weekly Attendance Report"

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02 15:04:05"
)

// WeekWindow returns the Monday-aligned 7-day window containing now,
// regardless of locale. The start is truncated to the beginning of Monday,
// the end is the last nanosecond of the following Sunday.
func WeekWindow(now time.Time) (start, end time.Time) {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}

	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = start.AddDate(0, 0, offset)

	end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// BuildRows turns the attendance snapshot into report rows, one per record
// in input order, followed by a summary row whose total reads
// "<presentDays>/<workers*7>".
func BuildRows(records []domain.AttendanceRecord) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(records)+1)
	totalPresent := 0

	for i := range records {
		record := &records[i]
		row := domain.ReportRow{WorkerName: record.WorkerName}
		for d, day := range domain.Weekdays {
			if record.Present(day) {
				row.Days[d] = "Present"
			} else {
				row.Days[d] = "Absent"
			}
		}
		row.Total = strconv.Itoa(record.PresentDays())
		totalPresent += record.PresentDays()
		rows = append(rows, row)
	}

	rows = append(rows, domain.ReportRow{
		WorkerName: domain.SummaryLabel,
		Total:      fmt.Sprintf("%d/%d", totalPresent, len(records)*7),
	})

	return rows
}

// Assemble wraps the rows in the exportable artifact: a three-line header
// block (title, week range, generation timestamp) above the column headers
// and data.
func Assemble(rows []domain.ReportRow, weekStart, weekEnd, generatedAt time.Time) domain.WeeklyReport {
	return domain.WeeklyReport{
		HeaderLines: []string{
			Title,
			fmt.Sprintf("Week: %s - %s", weekStart.Format(dateFormat), weekEnd.Format(dateFormat)),
			fmt.Sprintf("Generated: %s", generatedAt.Format(timestampFormat)),
		},
		Columns:     domain.ReportColumns,
		Rows:        rows,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		GeneratedAt: generatedAt,
	}
}
