package response

import (
	"errors"
	"net/http"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Presence domain errors
	case errors.Is(err, presence.ErrOpenSessionExists):
		Conflict(w, "An open session already exists")
	case errors.Is(err, presence.ErrNoOpenSession):
		NotFound(w, "No open session to stop")
	case errors.Is(err, presence.ErrSessionNotFound):
		NotFound(w, "Session not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, leave.ErrInvalidDecision):
		BadRequest(w, "Decision must be approved or rejected", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Decision already recorded for this stage")
	case errors.Is(err, leave.ErrLeaderStagePending):
		Conflict(w, "Leader approval is still pending")
	case errors.Is(err, leave.ErrNotReviewer):
		Forbidden(w, "Not a reviewer of this leave request")
	case errors.Is(err, leave.ErrNotApplicant):
		Conflict(w, "Only the applicant may cancel this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
