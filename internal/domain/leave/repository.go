package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate locks the request row for the remainder of the
	// current transaction, serializing concurrent decisions.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateDecision persists the status and both decision columns.
	UpdateDecision(ctx context.Context, request LeaveRequest) error

	ListByApplicant(ctx context.Context, applicantID string) ([]LeaveRequest, error)

	// ListPendingForLeader returns pending requests where the employee is
	// the snapshotted leader.
	ListPendingForLeader(ctx context.Context, leaderID string) ([]LeaveRequest, error)

	// ListAwaitingManager returns requests awaiting the employee's manager
	// decision: leader approved ones, plus pending ones with no leader.
	ListAwaitingManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
}
