package leave

import (
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	ApplicantID string `json:"-"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ApplicantID) {
		errs = append(errs, validator.ValidationError{Field: "applicant_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	RequestID  string `json:"-"`
	ReviewerID string `json:"-"`
	Decision   string `json:"decision"`
}

func (r DecisionRequest) Validate() error {
	switch Decision(r.Decision) {
	case DecisionApproved, DecisionRejected:
		return nil
	}
	return ErrInvalidDecision
}

type LeaveRequestResponse struct {
	ID               string     `json:"id"`
	ApplicantID      string     `json:"applicant_id"`
	ApplicantName    *string    `json:"applicant_name,omitempty"`
	TeamID           *string    `json:"team_id,omitempty"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	Reason           string     `json:"reason,omitempty"`
	Status           string     `json:"status"`
	LeaderID         *string    `json:"leader_id,omitempty"`
	LeaderDecision   *Decision  `json:"leader_decision,omitempty"`
	LeaderDecidedAt  *time.Time `json:"leader_decided_at,omitempty"`
	ManagerID        *string    `json:"manager_id,omitempty"`
	ManagerDecision  *Decision  `json:"manager_decision,omitempty"`
	ManagerDecidedAt *time.Time `json:"manager_decided_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToResponse converts a LeaveRequest entity to its API shape.
func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:               r.ID,
		ApplicantID:      r.ApplicantID,
		ApplicantName:    r.ApplicantName,
		TeamID:           r.TeamID,
		StartDate:        r.StartDate.Format("2006-01-02"),
		EndDate:          r.EndDate.Format("2006-01-02"),
		Reason:           r.Reason,
		Status:           string(r.Status),
		LeaderID:         r.LeaderID,
		LeaderDecision:   r.LeaderDecision,
		LeaderDecidedAt:  r.LeaderDecidedAt,
		ManagerID:        r.ManagerID,
		ManagerDecision:  r.ManagerDecision,
		ManagerDecidedAt: r.ManagerDecidedAt,
		CreatedAt:        r.CreatedAt,
	}
}

type ReviewListResponse struct {
	AsLeader  []LeaveRequestResponse `json:"as_leader"`
	AsManager []LeaveRequestResponse `json:"as_manager"`
}
