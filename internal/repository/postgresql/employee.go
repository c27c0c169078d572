package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.username, e.full_name, e.job_title, e.department_id, e.is_active, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Username,
		&e.FullName,
		&e.JobTitle,
		&e.DepartmentID,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.id = $1`

	return scanEmployee(q.QueryRow(ctx, query, id))
}

func (r *employeeRepositoryImpl) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.username = $1`

	return scanEmployee(q.QueryRow(ctx, query, username))
}

func (r *employeeRepositoryImpl) Search(ctx context.Context, req employee.SearchRequest) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.is_active
		  AND ($1 = '' OR e.full_name ILIKE '%' || $1 || '%'
		       OR e.job_title ILIKE '%' || $1 || '%'
		       OR d.name ILIKE '%' || $1 || '%')
		ORDER BY e.full_name, e.username
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, req.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.Username, &e.FullName, &e.JobTitle,
			&e.DepartmentID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) LockByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var lockedID string
	err := q.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to lock employee row: %w", err)
	}
	return nil
}

func (r *employeeRepositoryImpl) GetPrimaryTeam(ctx context.Context, employeeID string) (*employee.Team, error) {
	q := GetQuerier(ctx, r.db)

	// Primary team: earliest membership join date, ties broken by team id.
	query := `
		SELECT t.id, t.department_id, t.name, t.code, t.leader_id, t.description
		FROM team_memberships tm
		JOIN teams t ON tm.team_id = t.id
		WHERE tm.employee_id = $1
		ORDER BY tm.joined_at ASC NULLS LAST, t.id ASC
		LIMIT 1
	`

	var t employee.Team
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&t.ID, &t.DepartmentID, &t.Name, &t.Code, &t.LeaderID, &t.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get primary team: %w", err)
	}
	return &t, nil
}

func (r *employeeRepositoryImpl) GetDepartmentManager(ctx context.Context, employeeID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.username, m.full_name, m.job_title, m.department_id, m.is_active, m.created_at, m.updated_at
		FROM employees e
		JOIN departments d ON e.department_id = d.id
		JOIN employees m ON d.manager_id = m.id
		WHERE e.id = $1
	`

	var m employee.Employee
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&m.ID, &m.Username, &m.FullName, &m.JobTitle,
		&m.DepartmentID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department manager: %w", err)
	}
	return &m, nil
}

func (r *employeeRepositoryImpl) GetTeamLeaders(ctx context.Context, employeeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.username, l.full_name, l.job_title, l.department_id, l.is_active, l.created_at, l.updated_at
		FROM team_memberships tm
		JOIN teams t ON tm.team_id = t.id
		JOIN employees l ON t.leader_id = l.id
		WHERE tm.employee_id = $1
		ORDER BY tm.joined_at ASC NULLS LAST, t.id ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team leaders: %w", err)
	}
	defer rows.Close()

	var leaders []employee.Employee
	for rows.Next() {
		var l employee.Employee
		if err := rows.Scan(
			&l.ID, &l.Username, &l.FullName, &l.JobTitle,
			&l.DepartmentID, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leaders = append(leaders, l)
	}

	return leaders, rows.Err()
}
