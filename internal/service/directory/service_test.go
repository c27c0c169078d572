package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	team      *employee.Team
	manager   *employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUsername(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Search(_ context.Context, _ employee.SearchRequest) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) LockByID(_ context.Context, _ string) error { return nil }

func (r *fakeEmployeeRepo) GetPrimaryTeam(_ context.Context, _ string) (*employee.Team, error) {
	return r.team, nil
}

func (r *fakeEmployeeRepo) GetDepartmentManager(_ context.Context, _ string) (*employee.Employee, error) {
	return r.manager, nil
}

func (r *fakeEmployeeRepo) GetTeamLeaders(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func TestResolveApprovers(t *testing.T) {
	worker := employee.Employee{ID: "emp-1", Username: "bob", IsActive: true}
	leader := employee.Employee{ID: "leader-1", Username: "lena", IsActive: true}
	manager := employee.Employee{ID: "mgr-1", Username: "mira", IsActive: true}
	leaderID := leader.ID

	t.Run("resolves leader and manager", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			employees: map[string]employee.Employee{worker.ID: worker, leader.ID: leader},
			team:      &employee.Team{ID: "team-1", LeaderID: &leaderID},
			manager:   &manager,
		}
		svc := NewService(repo)

		got, err := svc.ResolveApprovers(context.Background(), "emp-1")

		require.NoError(t, err)
		require.NotNil(t, got.Leader)
		assert.Equal(t, "leader-1", got.Leader.ID)
		require.NotNil(t, got.Manager)
		assert.Equal(t, "mgr-1", got.Manager.ID)
		require.NotNil(t, got.Team)
		assert.Equal(t, "team-1", got.Team.ID)
	})

	t.Run("no team means no leader", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			employees: map[string]employee.Employee{worker.ID: worker},
			manager:   &manager,
		}
		svc := NewService(repo)

		got, err := svc.ResolveApprovers(context.Background(), "emp-1")

		require.NoError(t, err)
		assert.Nil(t, got.Leader)
		require.NotNil(t, got.Manager)
	})

	t.Run("team without a leader", func(t *testing.T) {
		repo := &fakeEmployeeRepo{
			employees: map[string]employee.Employee{worker.ID: worker},
			team:      &employee.Team{ID: "team-1"},
		}
		svc := NewService(repo)

		got, err := svc.ResolveApprovers(context.Background(), "emp-1")

		require.NoError(t, err)
		assert.Nil(t, got.Leader)
		assert.Nil(t, got.Manager)
	})

	t.Run("inactive leader still resolves", func(t *testing.T) {
		inactive := leader
		inactive.IsActive = false
		repo := &fakeEmployeeRepo{
			employees: map[string]employee.Employee{worker.ID: worker, inactive.ID: inactive},
			team:      &employee.Team{ID: "team-1", LeaderID: &leaderID},
		}
		svc := NewService(repo)

		got, err := svc.ResolveApprovers(context.Background(), "emp-1")

		require.NoError(t, err)
		require.NotNil(t, got.Leader)
		assert.Equal(t, "leader-1", got.Leader.ID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := NewService(&fakeEmployeeRepo{employees: map[string]employee.Employee{}})

		_, err := svc.ResolveApprovers(context.Background(), "ghost")

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
