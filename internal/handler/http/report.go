package http

import (
	"fmt"
	"net/http"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/report"
	"github.com/personnel-hq/personnel-backend-go/internal/handler/http/response"
)

// ReportHandler defines the timesheet export handler interface
type ReportHandler interface {
	MonthlyTimesheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reports report.Service
}

func NewReportHandler(reports report.Service) ReportHandler {
	return &reportHandlerImpl{reports: reports}
}

// MonthlyTimesheet streams the monthly timesheet as CSV.
func (h *reportHandlerImpl) MonthlyTimesheet(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyTimesheetRequest{
		Month: r.URL.Query().Get("month"),
	}
	if username := r.URL.Query().Get("username"); username != "" {
		req.Username = &username
	}

	rows, err := h.reports.MonthlyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="timesheet-%s.csv"`, req.Month))

	if err := h.reports.WriteCSV(w, rows); err != nil {
		// headers already sent, nothing sensible left to do
		return
	}
}
