package employee

import (
	"time"
)

type Employee struct {
	ID           string
	Username     string
	FullName     string
	JobTitle     *string
	DepartmentID *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the full name, falling back to the username.
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return e.Username
}

type Department struct {
	ID          string
	Name        string
	Code        *string
	ManagerID   *string
	Description *string
}

type Team struct {
	ID           string
	DepartmentID string
	Name         string
	Code         *string
	LeaderID     *string
	Description  *string
}

// TeamMembership links an employee to a team. At most one membership per
// (employee, team) pair.
type TeamMembership struct {
	ID         string
	EmployeeID string
	TeamID     string
	JoinedAt   *time.Time
	IsLeader   bool
	Role       *string
}
