package employee

import "context"

// DirectoryService is the read-only org chart lookup used by the leave
// workflow and the notification fan-out.
type DirectoryService interface {
	// ResolveApprovers returns the employee's primary team leader and
	// department manager. Fails only when the employee itself is missing.
	ResolveApprovers(ctx context.Context, employeeID string) (Approvers, error)

	Search(ctx context.Context, req SearchRequest) ([]EmployeeResponse, error)
}
