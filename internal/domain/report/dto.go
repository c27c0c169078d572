package report

import (
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/pkg/validator"
)

type MonthlyTimesheetRequest struct {
	Month    string
	Username *string
}

func (r MonthlyTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TimesheetRow is one aggregated line of the monthly export: total hours an
// employee worked on one date, rounded to 2 decimal places.
type TimesheetRow struct {
	Username string
	Date     string
	Hours    float64
}

// SessionSlice is a closed presence session as read for aggregation.
type SessionSlice struct {
	Username  string
	StartTime time.Time
	EndTime   time.Time
}
