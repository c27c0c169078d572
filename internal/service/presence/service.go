package presence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/notification"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/clock"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type service struct {
	sessions   presence.SessionRepository
	entries    presence.TimeEntryRepository
	employees  employee.EmployeeRepository
	dispatcher notification.Dispatcher
	tx         database.TxManager
	clock      clock.Clock
	logger     *slog.Logger
}

func NewService(
	sessions presence.SessionRepository,
	entries presence.TimeEntryRepository,
	employees employee.EmployeeRepository,
	dispatcher notification.Dispatcher,
	tx database.TxManager,
	clk clock.Clock,
	logger *slog.Logger,
) presence.TrackerService {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		sessions:   sessions,
		entries:    entries,
		employees:  employees,
		dispatcher: dispatcher,
		tx:         tx,
		clock:      clk,
		logger:     logger,
	}
}

func (s *service) StartSession(ctx context.Context, req presence.StartSessionRequest) (presence.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return presence.SessionResponse{}, err
	}

	var created presence.PresenceSession

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The employee row lock serializes concurrent starts and stops for
		// the same employee, so the open-session check below is race free.
		if err := s.employees.LockByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		open, err := s.sessions.HasOpenSession(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to check open session: %w", err)
		}
		if open {
			return presence.ErrOpenSessionExists
		}

		actor, err := s.employees.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		created, err = s.sessions.Create(ctx, presence.PresenceSession{
			EmployeeID: req.EmployeeID,
			StartTime:  s.clock.Now(),
			Location:   req.Location,
		})
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		return s.dispatcher.PresenceStarted(ctx, actor, created)
	})
	if err != nil {
		return presence.SessionResponse{}, err
	}

	s.logger.Info("presence session started",
		"employee_id", created.EmployeeID, "session_id", created.ID)

	return presence.ToSessionResponse(created), nil
}

func (s *service) StopSession(ctx context.Context, employeeID string) (presence.SessionResponse, error) {
	var closed presence.PresenceSession

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.LockByID(ctx, employeeID); err != nil {
			return err
		}

		session, err := s.sessions.GetLatestOpen(ctx, employeeID)
		if err != nil {
			return err
		}

		endTime := s.clock.Now()
		if err := s.sessions.Close(ctx, session.ID, endTime); err != nil {
			return err
		}
		session.EndTime = &endTime
		closed = session

		actor, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}

		return s.dispatcher.PresenceStopped(ctx, actor, closed)
	})
	if err != nil {
		return presence.SessionResponse{}, err
	}

	if closed.ClockSkewed() {
		s.logger.Warn("presence session closed before it started",
			"session_id", closed.ID, "start_time", closed.StartTime, "end_time", closed.EndTime)
	}

	s.logger.Info("presence session stopped",
		"employee_id", closed.EmployeeID, "session_id", closed.ID)

	return presence.ToSessionResponse(closed), nil
}

func (s *service) ListSessions(ctx context.Context, employeeID string) ([]presence.SessionResponse, error) {
	sessions, err := s.sessions.ListByEmployee(ctx, employeeID, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]presence.SessionResponse, len(sessions))
	for i, sess := range sessions {
		responses[i] = presence.ToSessionResponse(sess)
	}
	return responses, nil
}

func (s *service) SubmitTimeEntry(ctx context.Context, req presence.SubmitTimeEntryRequest) (presence.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return presence.TimeEntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	entry, err := s.entries.Create(ctx, presence.TimeEntry{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Hours:      req.Hours,
		Project:    req.Project,
		Notes:      req.Notes,
		Source:     "manual",
	})
	if err != nil {
		return presence.TimeEntryResponse{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return toTimeEntryResponse(entry), nil
}

func (s *service) ListTimeEntries(ctx context.Context, employeeID string) ([]presence.TimeEntryResponse, error) {
	entries, err := s.entries.ListByEmployee(ctx, employeeID, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]presence.TimeEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = toTimeEntryResponse(e)
	}
	return responses, nil
}

func toTimeEntryResponse(e presence.TimeEntry) presence.TimeEntryResponse {
	return presence.TimeEntryResponse{
		ID:       e.ID,
		Date:     e.Date.Format("2006-01-02"),
		Hours:    e.Hours,
		Project:  e.Project,
		Notes:    e.Notes,
		Source:   e.Source,
		Approved: e.Approved,
	}
}
