package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) presence.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

func (r *timeEntryRepositoryImpl) Create(ctx context.Context, entry presence.TimeEntry) (presence.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.New().String()

	query := `
		INSERT INTO time_entries (id, employee_id, date, hours, project, notes, source, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.Date, entry.Hours,
		entry.Project, entry.Notes, entry.Source, entry.Approved,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return presence.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

func (r *timeEntryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]presence.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, employee_id, date, hours, project, notes, source, approved, created_at
		FROM time_entries
		WHERE employee_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []presence.TimeEntry
	for rows.Next() {
		var e presence.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Date, &e.Hours,
			&e.Project, &e.Notes, &e.Source, &e.Approved, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
