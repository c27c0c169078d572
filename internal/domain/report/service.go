package report

import (
	"context"
	"io"
)

// Service aggregates closed presence sessions into the monthly timesheet
// export: columns username,date,hours sorted by (username, date).
type Service interface {
	MonthlyTimesheet(ctx context.Context, req MonthlyTimesheetRequest) ([]TimesheetRow, error)
	WriteCSV(w io.Writer, rows []TimesheetRow) error
}
