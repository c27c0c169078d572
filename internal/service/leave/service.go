package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/notification"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/clock"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type service struct {
	requests   leave.LeaveRequestRepository
	employees  employee.EmployeeRepository
	directory  employee.DirectoryService
	dispatcher notification.Dispatcher
	tx         database.TxManager
	clock      clock.Clock
	logger     *slog.Logger
}

func NewService(
	requests leave.LeaveRequestRepository,
	employees employee.EmployeeRepository,
	directory employee.DirectoryService,
	dispatcher notification.Dispatcher,
	tx database.TxManager,
	clk clock.Clock,
	logger *slog.Logger,
) leave.WorkflowService {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		requests:   requests,
		employees:  employees,
		directory:  directory,
		dispatcher: dispatcher,
		tx:         tx,
		clock:      clk,
		logger:     logger,
	}
}

func (s *service) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	var created leave.LeaveRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		applicant, err := s.employees.GetByID(ctx, req.ApplicantID)
		if err != nil {
			return err
		}

		// Reviewers are snapshotted now. Later org chart changes never move
		// this request to different approvers.
		approvers, err := s.directory.ResolveApprovers(ctx, applicant.ID)
		if err != nil {
			return err
		}

		request := leave.LeaveRequest{
			ApplicantID: applicant.ID,
			StartDate:   startDate,
			EndDate:     endDate,
			Reason:      req.Reason,
			Status:      leave.StatusPending,
		}
		if approvers.Team != nil {
			request.TeamID = &approvers.Team.ID
		}
		if approvers.Leader != nil {
			request.LeaderID = &approvers.Leader.ID
		}
		if approvers.Manager != nil {
			request.ManagerID = &approvers.Manager.ID
		}

		created, err = s.requests.Create(ctx, request)
		if err != nil {
			return err
		}

		return s.dispatcher.LeaveSubmitted(ctx, created, applicant)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		"request_id", created.ID, "applicant_id", created.ApplicantID,
		"start_date", req.StartDate, "end_date", req.EndDate)

	return leave.ToResponse(created), nil
}

func (s *service) LeaderDecision(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, func(r *leave.LeaveRequest) error {
		return r.ApplyLeaderDecision(req.ReviewerID, leave.Decision(req.Decision), s.clock.Now())
	}, func(ctx context.Context, r leave.LeaveRequest) error {
		return s.dispatcher.LeaveLeaderDecided(ctx, r)
	})
}

func (s *service) ManagerDecision(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, req, func(r *leave.LeaveRequest) error {
		return r.ApplyManagerDecision(req.ReviewerID, leave.Decision(req.Decision), s.clock.Now())
	}, func(ctx context.Context, r leave.LeaveRequest) error {
		return s.dispatcher.LeaveManagerDecided(ctx, r)
	})
}

// decide runs one review decision: lock the request row, apply the
// transition, persist, notify. Concurrent decisions on the same request
// serialize on the row lock, so the second reviewer sees the first one's
// outcome and gets a conflict instead of overwriting it.
func (s *service) decide(
	ctx context.Context,
	req leave.DecisionRequest,
	apply func(*leave.LeaveRequest) error,
	notify func(context.Context, leave.LeaveRequest) error,
) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var decided leave.LeaveRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if err := apply(&request); err != nil {
			return err
		}

		if err := s.requests.UpdateDecision(ctx, request); err != nil {
			return err
		}
		decided = request

		return notify(ctx, decided)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request decided",
		"request_id", decided.ID, "reviewer_id", req.ReviewerID,
		"decision", req.Decision, "status", decided.Status)

	return leave.ToResponse(decided), nil
}

func (s *service) Cancel(ctx context.Context, requestID, applicantID string) (leave.LeaveRequestResponse, error) {
	var cancelled leave.LeaveRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		if err := request.Cancel(applicantID); err != nil {
			return err
		}

		if err := s.requests.UpdateDecision(ctx, request); err != nil {
			return err
		}
		cancelled = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request cancelled", "request_id", cancelled.ID)

	return leave.ToResponse(cancelled), nil
}

func (s *service) ListMine(ctx context.Context, applicantID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := s.requests.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

func (s *service) ListForReview(ctx context.Context, reviewerID string) (leave.ReviewListResponse, error) {
	asLeader, err := s.requests.ListPendingForLeader(ctx, reviewerID)
	if err != nil {
		return leave.ReviewListResponse{}, fmt.Errorf("failed to list leader queue: %w", err)
	}

	asManager, err := s.requests.ListAwaitingManager(ctx, reviewerID)
	if err != nil {
		return leave.ReviewListResponse{}, fmt.Errorf("failed to list manager queue: %w", err)
	}

	return leave.ReviewListResponse{
		AsLeader:  toResponses(asLeader),
		AsManager: toResponses(asManager),
	}, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = leave.ToResponse(r)
	}
	return responses
}
