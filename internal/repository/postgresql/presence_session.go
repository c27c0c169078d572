package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) presence.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session presence.PresenceSession) (presence.PresenceSession, error) {
	q := GetQuerier(ctx, r.db)

	session.ID = uuid.New().String()

	query := `
		INSERT INTO presence_sessions (id, employee_id, start_time, end_time, location, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		session.ID, session.EmployeeID, session.StartTime, session.EndTime, session.Location,
	).Scan(&session.CreatedAt)
	if err != nil {
		return presence.PresenceSession{}, fmt.Errorf("failed to create presence session: %w", err)
	}

	return session, nil
}

func (r *sessionRepositoryImpl) HasOpenSession(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM presence_sessions
			WHERE employee_id = $1 AND end_time IS NULL
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID).Scan(&exists)
	return exists, err
}

func (r *sessionRepositoryImpl) GetLatestOpen(ctx context.Context, employeeID string) (presence.PresenceSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_time, end_time, location, created_at
		FROM presence_sessions
		WHERE employee_id = $1 AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	var s presence.PresenceSession
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return presence.PresenceSession{}, presence.ErrNoOpenSession
		}
		return presence.PresenceSession{}, err
	}

	return s, nil
}

func (r *sessionRepositoryImpl) Close(ctx context.Context, id string, endTime time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE presence_sessions SET end_time = $1 WHERE id = $2 AND end_time IS NULL
	`, endTime, id)
	if err != nil {
		return fmt.Errorf("failed to close presence session: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return presence.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]presence.PresenceSession, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 || limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, employee_id, start_time, end_time, location, created_at
		FROM presence_sessions
		WHERE employee_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list presence sessions: %w", err)
	}
	defer rows.Close()

	var sessions []presence.PresenceSession
	for rows.Next() {
		var s presence.PresenceSession
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.StartTime, &s.EndTime, &s.Location, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}
