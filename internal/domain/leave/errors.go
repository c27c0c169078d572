package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInvalidDecision      = errors.New("decision must be approved or rejected")

	ErrAlreadyProcessed   = errors.New("leave request already processed")
	ErrAlreadyDecided     = errors.New("decision already recorded for this role")
	ErrLeaderStagePending = errors.New("leader approval is still pending")
	ErrNotReviewer        = errors.New("not a reviewer of this leave request")
	ErrNotApplicant       = errors.New("only the applicant may cancel a leave request")
)
