package report

import (
	"context"
	"time"
)

type Repository interface {
	// GetClosedSessions returns closed presence sessions starting within
	// [monthStart, monthEnd), optionally restricted to one username.
	GetClosedSessions(ctx context.Context, monthStart, monthEnd time.Time, username *string) ([]SessionSlice, error)
}
