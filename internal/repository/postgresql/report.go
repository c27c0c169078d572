package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/report"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) GetClosedSessions(ctx context.Context, monthStart, monthEnd time.Time, username *string) ([]report.SessionSlice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.username, ps.start_time, ps.end_time
		FROM presence_sessions ps
		JOIN employees e ON ps.employee_id = e.id
		WHERE ps.end_time IS NOT NULL
		  AND ps.start_time >= $1 AND ps.start_time < $2
		  AND ($3::text IS NULL OR e.username = $3)
		ORDER BY e.username, ps.start_time
	`

	rows, err := q.Query(ctx, query, monthStart, monthEnd, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query closed sessions: %w", err)
	}
	defer rows.Close()

	var slices []report.SessionSlice
	for rows.Next() {
		var s report.SessionSlice
		if err := rows.Scan(&s.Username, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		slices = append(slices, s)
	}

	return slices, rows.Err()
}
