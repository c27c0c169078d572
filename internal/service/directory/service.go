package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
)

type service struct {
	employees employee.EmployeeRepository
}

func NewService(employees employee.EmployeeRepository) employee.DirectoryService {
	return &service{employees: employees}
}

func (s *service) ResolveApprovers(ctx context.Context, employeeID string) (employee.Approvers, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return employee.Approvers{}, err
	}

	var approvers employee.Approvers

	team, err := s.employees.GetPrimaryTeam(ctx, employeeID)
	if err != nil {
		return employee.Approvers{}, fmt.Errorf("failed to resolve primary team: %w", err)
	}
	approvers.Team = team

	if team != nil && team.LeaderID != nil {
		leader, err := s.employees.GetByID(ctx, *team.LeaderID)
		if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Approvers{}, fmt.Errorf("failed to resolve team leader: %w", err)
		}
		if err == nil {
			approvers.Leader = &leader
		}
	}

	manager, err := s.employees.GetDepartmentManager(ctx, employeeID)
	if err != nil {
		return employee.Approvers{}, fmt.Errorf("failed to resolve department manager: %w", err)
	}
	approvers.Manager = manager

	return approvers, nil
}

func (s *service) Search(ctx context.Context, req employee.SearchRequest) ([]employee.EmployeeResponse, error) {
	if req.Limit <= 0 || req.Limit > 50 {
		req.Limit = 50
	}

	employees, err := s.employees.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = employee.ToResponse(e, nil)
	}
	return responses, nil
}
