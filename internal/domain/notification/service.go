package notification

import (
	"context"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
)

// Dispatcher fans workflow and presence events out to notification records.
// Calls happen inside the triggering transaction, so a visible state change
// is never observed without its notifications. A recipient that cannot be
// resolved is skipped, never a reason to fail the transition.
type Dispatcher interface {
	PresenceStarted(ctx context.Context, actor employee.Employee, session presence.PresenceSession) error
	PresenceStopped(ctx context.Context, actor employee.Employee, session presence.PresenceSession) error

	LeaveSubmitted(ctx context.Context, request leave.LeaveRequest, applicant employee.Employee) error
	LeaveLeaderDecided(ctx context.Context, request leave.LeaveRequest) error
	LeaveManagerDecided(ctx context.Context, request leave.LeaveRequest) error
}

// QueryService is the read/mark-read surface exposed over HTTP.
type QueryService interface {
	List(ctx context.Context, recipientID string, unreadOnly bool) (ListResponse, error)
	MarkRead(ctx context.Context, recipientID string, req MarkReadRequest) error
	MarkAllRead(ctx context.Context, recipientID string) error
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}
