package leave

import "context"

// WorkflowService drives leave requests from submission through the leader
// and manager decision stages. Every mutation runs in one transaction with
// its notifications.
type WorkflowService interface {
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	LeaderDecision(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)
	ManagerDecision(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID, applicantID string) (LeaveRequestResponse, error)

	ListMine(ctx context.Context, applicantID string) ([]LeaveRequestResponse, error)
	ListForReview(ctx context.Context, reviewerID string) (ReviewListResponse, error)
}
