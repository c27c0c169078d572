package presence

import (
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/pkg/validator"
)

type StartSessionRequest struct {
	EmployeeID string `json:"-"`
	Location   string `json:"location"`
}

func (r StartSessionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitTimeEntryRequest struct {
	EmployeeID string  `json:"-"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	Project    string  `json:"project"`
	Notes      string  `json:"notes"`
}

func (r SubmitTimeEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Hours <= 0 || r.Hours > 24 {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be between 0 and 24"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        string     `json:"location,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	ClockSkewed     bool       `json:"clock_skewed,omitempty"`
}

// ToSessionResponse converts a session entity to its API shape.
func ToSessionResponse(s PresenceSession) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		Location:        s.Location,
		DurationSeconds: s.DurationSeconds(),
		ClockSkewed:     s.ClockSkewed(),
	}
}

type TimeEntryResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Project  string  `json:"project,omitempty"`
	Notes    string  `json:"notes,omitempty"`
	Source   string  `json:"source"`
	Approved bool    `json:"approved"`
}
