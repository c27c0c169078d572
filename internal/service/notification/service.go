package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/notification"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/sse"
)

type service struct {
	repo      notification.Repository
	employees employee.EmployeeRepository
	hub       *sse.Hub
	logger    *slog.Logger
}

// NewService builds the dispatcher and query service. The hub may be nil
// when no realtime push is wired (CLI tools, tests).
func NewService(repo notification.Repository, employees employee.EmployeeRepository, hub *sse.Hub, logger *slog.Logger) *service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, employees: employees, hub: hub, logger: logger}
}

var _ notification.Dispatcher = (*service)(nil)
var _ notification.QueryService = (*service)(nil)

// create persists one notification on the caller's transaction and pushes
// it to SSE subscribers best effort.
func (s *service) create(ctx context.Context, n notification.Notification) error {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.publishAfterCommit(ctx, created)
	return nil
}

// publishAfterCommit pushes n to SSE subscribers once the surrounding
// transaction commits. A row pushed before commit could describe a
// notification the rollback then erases.
func (s *service) publishAfterCommit(ctx context.Context, n notification.Notification) {
	if s.hub == nil {
		return
	}
	database.OnCommit(ctx, func() {
		s.hub.Publish(n.RecipientID, sse.Event{
			RecipientID: n.RecipientID,
			Event:       "notification",
			Data:        notification.ToResponse(n),
		})
	})
}

func (s *service) presenceChanged(ctx context.Context, actor employee.Employee, session presence.PresenceSession, action string) error {
	leaders, err := s.employees.GetTeamLeaders(ctx, actor.ID)
	if err != nil {
		// recipient resolution failures never block the presence change
		s.logger.Warn("presence notification: failed to resolve team leaders",
			"employee_id", actor.ID, "error", err)
		leaders = nil
	}
	manager, err := s.employees.GetDepartmentManager(ctx, actor.ID)
	if err != nil {
		s.logger.Warn("presence notification: failed to resolve department manager",
			"employee_id", actor.ID, "error", err)
		manager = nil
	}

	target := &notification.TargetRef{Kind: notification.TargetPresenceSession, ID: session.ID}
	actorID := actor.ID

	recipients := PresenceRecipients(leaders, manager)
	if len(recipients) == 0 {
		return nil
	}

	batch := make([]notification.Notification, len(recipients))
	for i, recipientID := range recipients {
		batch[i] = notification.Notification{
			RecipientID: recipientID,
			Verb:        fmt.Sprintf("%s %s working", actor.DisplayName(), action),
			ActorID:     &actorID,
			Target:      target,
			Data: map[string]interface{}{
				"action":     action,
				"session_id": session.ID,
			},
		}
	}

	created, err := s.repo.CreateBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	for _, n := range created {
		s.publishAfterCommit(ctx, n)
	}
	return nil
}

func (s *service) PresenceStarted(ctx context.Context, actor employee.Employee, session presence.PresenceSession) error {
	return s.presenceChanged(ctx, actor, session, "started")
}

func (s *service) PresenceStopped(ctx context.Context, actor employee.Employee, session presence.PresenceSession) error {
	return s.presenceChanged(ctx, actor, session, "stopped")
}

func (s *service) LeaveSubmitted(ctx context.Context, request leave.LeaveRequest, applicant employee.Employee) error {
	target := &notification.TargetRef{Kind: notification.TargetLeaveRequest, ID: request.ID}
	actorID := applicant.ID

	if reviewerID, stage := SubmissionReviewer(request.LeaderID, request.ManagerID); reviewerID != nil {
		n := notification.Notification{
			RecipientID: *reviewerID,
			Verb:        fmt.Sprintf("Leave request from %s", applicant.DisplayName()),
			ActorID:     &actorID,
			Target:      target,
			Data:        map[string]interface{}{"stage": stage},
		}
		if err := s.create(ctx, n); err != nil {
			return err
		}
	}

	// applicant always gets a confirmation
	return s.create(ctx, notification.Notification{
		RecipientID: applicant.ID,
		Verb:        "Your leave request was submitted",
		Target:      target,
		Data:        map[string]interface{}{},
	})
}

func (s *service) LeaveLeaderDecided(ctx context.Context, request leave.LeaveRequest) error {
	if request.LeaderDecision == nil {
		return nil
	}
	target := &notification.TargetRef{Kind: notification.TargetLeaveRequest, ID: request.ID}
	decision := string(*request.LeaderDecision)

	// manager is the next-stage reviewer on approval
	if *request.LeaderDecision == leave.DecisionApproved && request.ManagerID != nil {
		n := notification.Notification{
			RecipientID: *request.ManagerID,
			Verb:        "Leave request awaiting your review",
			ActorID:     request.LeaderID,
			Target:      target,
			Data:        map[string]interface{}{"stage": "manager"},
		}
		if err := s.create(ctx, n); err != nil {
			return err
		}
	}

	return s.create(ctx, notification.Notification{
		RecipientID: request.ApplicantID,
		Verb:        fmt.Sprintf("Your leave request was %s by the team leader", decision),
		ActorID:     request.LeaderID,
		Target:      target,
		Data:        map[string]interface{}{"role": "leader", "decision": decision},
	})
}

func (s *service) LeaveManagerDecided(ctx context.Context, request leave.LeaveRequest) error {
	if request.ManagerDecision == nil {
		return nil
	}
	decision := string(*request.ManagerDecision)

	return s.create(ctx, notification.Notification{
		RecipientID: request.ApplicantID,
		Verb:        fmt.Sprintf("Your leave request was %s by the department manager", decision),
		ActorID:     request.ManagerID,
		Target:      &notification.TargetRef{Kind: notification.TargetLeaveRequest, ID: request.ID},
		Data:        map[string]interface{}{"role": "manager", "decision": decision},
	})
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool) (notification.ListResponse, error) {
	notifications, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, 200)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unreadCount, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}

	return notification.ListResponse{Notifications: responses, UnreadCount: unreadCount}, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID string, req notification.MarkReadRequest) error {
	return s.repo.MarkRead(ctx, recipientID, req.NotificationIDs)
}

func (s *service) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}
