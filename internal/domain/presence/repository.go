package presence

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, session PresenceSession) (PresenceSession, error)

	// HasOpenSession reports whether the employee has a session with no
	// end time. Callers needing the check to be race-free must hold the
	// employee row lock first.
	HasOpenSession(ctx context.Context, employeeID string) (bool, error)

	// GetLatestOpen returns the open session with the latest start time,
	// or ErrNoOpenSession.
	GetLatestOpen(ctx context.Context, employeeID string) (PresenceSession, error)

	// Close sets the end time of a session.
	Close(ctx context.Context, id string, endTime time.Time) error

	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]PresenceSession, error)
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]TimeEntry, error)
}
