package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	Search(ctx context.Context, req SearchRequest) ([]Employee, error)

	// LockByID takes a row-level lock on the employee, serializing
	// concurrent mutations scoped to that employee. Must run inside a
	// transaction.
	LockByID(ctx context.Context, id string) error

	// GetPrimaryTeam returns the employee's primary team: the membership
	// with the earliest join date, ties broken by lowest team id. Returns
	// (nil, nil) when the employee has no team.
	GetPrimaryTeam(ctx context.Context, employeeID string) (*Team, error)

	// GetDepartmentManager returns the manager of the employee's
	// department, or (nil, nil) when the employee has no department or the
	// department has no manager.
	GetDepartmentManager(ctx context.Context, employeeID string) (*Employee, error)

	// GetTeamLeaders returns the leaders of every team the employee
	// belongs to. May contain duplicates when someone leads several teams.
	GetTeamLeaders(ctx context.Context, employeeID string) ([]Employee, error)
}
