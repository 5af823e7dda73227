package domain

import "time"

// SummaryLabel is the sentinel worker name of the trailing summary row.
const SummaryLabel = "SUMMARY"

// ReportColumns are the column headers of the tabular report.
var ReportColumns = []string{
	"Worker Name",
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	"Total Days Present",
}

type ReportRow struct {
	WorkerName string    `json:"workerName"`
	Days       [7]string `json:"days"` // "Present"/"Absent", Monday first; blank on the summary row
	Total      string    `json:"total"`
}

// Cells returns the row's values in column order.
func (r ReportRow) Cells() []string {
	cells := make([]string, 0, len(ReportColumns))
	cells = append(cells, r.WorkerName)
	cells = append(cells, r.Days[:]...)
	cells = append(cells, r.Total)
	return cells
}

// WeeklyReport is the exportable artifact handed to the spreadsheet writer.
// It is a pure data structure with no notion of any particular file format.
type WeeklyReport struct {
	HeaderLines []string    `json:"headerLines"`
	Columns     []string    `json:"columns"`
	Rows        []ReportRow `json:"rows"`
	WeekStart   time.Time   `json:"weekStart"`
	WeekEnd     time.Time   `json:"weekEnd"`
	GeneratedAt time.Time   `json:"generatedAt"`
}
