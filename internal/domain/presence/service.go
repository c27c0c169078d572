package presence

import "context"

// TrackerService drives presence session timing. Start/stop are serialized
// per employee so two concurrent starts can never produce two open sessions.
type TrackerService interface {
	StartSession(ctx context.Context, req StartSessionRequest) (SessionResponse, error)
	StopSession(ctx context.Context, employeeID string) (SessionResponse, error)
	ListSessions(ctx context.Context, employeeID string) ([]SessionResponse, error)

	SubmitTimeEntry(ctx context.Context, req SubmitTimeEntryRequest) (TimeEntryResponse, error)
	ListTimeEntries(ctx context.Context, employeeID string) ([]TimeEntryResponse, error)
}
