package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	StatusPending         LeaveRequestStatus = "pending"
	StatusLeaderApproved  LeaveRequestStatus = "leader_approved"
	StatusManagerApproved LeaveRequestStatus = "manager_approved"
	StatusRejected        LeaveRequestStatus = "rejected"
	StatusCancelled       LeaveRequestStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s LeaveRequestStatus) Terminal() bool {
	switch s {
	case StatusManagerApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// LeaveRequest is a leave application moving through the two-stage approval
// workflow. Leader and manager are snapshotted at submission time; later org
// chart changes do not move a request to different reviewers.
type LeaveRequest struct {
	ID          string
	ApplicantID string
	TeamID      *string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string

	LeaderID        *string
	LeaderDecision  *Decision
	LeaderDecidedAt *time.Time

	ManagerID        *string
	ManagerDecision  *Decision
	ManagerDecidedAt *time.Time

	Status    LeaveRequestStatus
	CreatedAt time.Time

	// Joined for responses
	ApplicantName *string
}

// ApplyLeaderDecision records the leader's decision. Only the snapshotted
// leader may decide, only once, and only while the request is pending.
func (r *LeaveRequest) ApplyLeaderDecision(actorID string, decision Decision, at time.Time) error {
	if r.LeaderID == nil || *r.LeaderID != actorID {
		return ErrNotReviewer
	}
	if r.Status.Terminal() {
		return ErrAlreadyProcessed
	}
	if r.LeaderDecision != nil {
		return ErrAlreadyDecided
	}
	if r.Status != StatusPending {
		return ErrAlreadyProcessed
	}

	d := decision
	r.LeaderDecision = &d
	r.LeaderDecidedAt = &at
	if decision == DecisionApproved {
		r.Status = StatusLeaderApproved
	} else {
		r.Status = StatusRejected
	}
	return nil
}

// ApplyManagerDecision records the manager's decision. Approval requires a
// prior leader approval unless no leader was snapshotted, in which case the
// manager is the sole approver and decides directly from pending. Rejection
// is allowed from pending or leader_approved.
func (r *LeaveRequest) ApplyManagerDecision(actorID string, decision Decision, at time.Time) error {
	if r.ManagerID == nil || *r.ManagerID != actorID {
		return ErrNotReviewer
	}
	if r.Status.Terminal() {
		return ErrAlreadyProcessed
	}
	if r.ManagerDecision != nil {
		return ErrAlreadyDecided
	}
	switch r.Status {
	case StatusPending:
		if decision == DecisionApproved && r.LeaderID != nil {
			// leader stage still outstanding
			return ErrLeaderStagePending
		}
	case StatusLeaderApproved:
	default:
		return ErrAlreadyProcessed
	}

	d := decision
	r.ManagerDecision = &d
	r.ManagerDecidedAt = &at
	if decision == DecisionApproved {
		r.Status = StatusManagerApproved
	} else {
		r.Status = StatusRejected
	}
	return nil
}

// Cancel withdraws the request. Only the applicant may cancel, and only
// while the request is still pending or leader approved.
func (r *LeaveRequest) Cancel(actorID string) error {
	if r.ApplicantID != actorID {
		return ErrNotApplicant
	}
	switch r.Status {
	case StatusPending, StatusLeaderApproved:
		r.Status = StatusCancelled
		return nil
	}
	return ErrAlreadyProcessed
}
