package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.applicant_id, lr.team_id, lr.start_date, lr.end_date, lr.reason,
	lr.leader_id, lr.leader_decision, lr.leader_decided_at,
	lr.manager_id, lr.manager_decision, lr.manager_decided_at,
	lr.status, lr.created_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	err := row.Scan(
		&r.ID, &r.ApplicantID, &r.TeamID, &r.StartDate, &r.EndDate, &r.Reason,
		&r.LeaderID, &r.LeaderDecision, &r.LeaderDecidedAt,
		&r.ManagerID, &r.ManagerDecision, &r.ManagerDecidedAt,
		&r.Status, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return r, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.New().String()

	query := `
		INSERT INTO leave_requests (
			id, applicant_id, team_id, start_date, end_date, reason,
			leader_id, manager_id, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.ApplicantID, request.TeamID,
		request.StartDate, request.EndDate, request.Reason,
		request.LeaderID, request.ManagerID, request.Status,
	).Scan(&request.CreatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1`

	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.id = $1
		FOR UPDATE OF lr`

	return scanLeaveRequest(q.QueryRow(ctx, query, id))
}

func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
		    leader_decision = $2, leader_decided_at = $3,
		    manager_decision = $4, manager_decided_at = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		request.Status,
		request.LeaderDecision, request.LeaderDecidedAt,
		request.ManagerDecision, request.ManagerDecidedAt,
		request.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request %s: %w", request.ID, err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) listWhere(ctx context.Context, where string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveRequestColumns + `,
		e.full_name AS applicant_name
		FROM leave_requests lr
		JOIN employees e ON lr.applicant_id = e.id
		WHERE ` + where + `
		ORDER BY lr.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.ApplicantID, &lr.TeamID, &lr.StartDate, &lr.EndDate, &lr.Reason,
			&lr.LeaderID, &lr.LeaderDecision, &lr.LeaderDecidedAt,
			&lr.ManagerID, &lr.ManagerDecision, &lr.ManagerDecidedAt,
			&lr.Status, &lr.CreatedAt,
			&lr.ApplicantName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ListByApplicant(ctx context.Context, applicantID string) ([]leave.LeaveRequest, error) {
	return r.listWhere(ctx, `lr.applicant_id = $1`, applicantID)
}

func (r *leaveRequestRepositoryImpl) ListPendingForLeader(ctx context.Context, leaderID string) ([]leave.LeaveRequest, error) {
	return r.listWhere(ctx, `lr.leader_id = $1 AND lr.status = $2`, leaderID, leave.StatusPending)
}

func (r *leaveRequestRepositoryImpl) ListAwaitingManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	return r.listWhere(ctx,
		`lr.manager_id = $1 AND (lr.status = $2 OR (lr.status = $3 AND lr.leader_id IS NULL))`,
		managerID, leave.StatusLeaderApproved, leave.StatusPending)
}
