package employee

// Approvers holds the reviewers resolved for an employee at a point in time.
// Any of the fields may be nil when the org chart has no matching entry.
type Approvers struct {
	Leader  *Employee
	Manager *Employee
	Team    *Team
}

type SearchRequest struct {
	Query string
	Limit int
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	JobTitle       *string `json:"job_title,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
}

type ApproversResponse struct {
	Leader  *EmployeeResponse `json:"leader,omitempty"`
	Manager *EmployeeResponse `json:"manager,omitempty"`
}

// ToResponse converts an Employee entity to its API shape.
func ToResponse(e Employee, departmentName *string) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Username:       e.Username,
		FullName:       e.FullName,
		JobTitle:       e.JobTitle,
		DepartmentName: departmentName,
	}
}
