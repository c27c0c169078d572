package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/leave"
	"github.com/personnel-hq/personnel-backend-go/internal/domain/presence"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

type fakeTxManager struct{}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
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
	return nil, nil
}

func (r *fakeEmployeeRepo) LockByID(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *fakeEmployeeRepo) GetPrimaryTeam(_ context.Context, _ string) (*employee.Team, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) GetDepartmentManager(_ context.Context, _ string) (*employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) GetTeamLeaders(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

// fakeDirectory serves fixed approvers per employee id.
type fakeDirectory struct {
	approvers map[string]employee.Approvers
}

func (d *fakeDirectory) ResolveApprovers(_ context.Context, employeeID string) (employee.Approvers, error) {
	return d.approvers[employeeID], nil
}

func (d *fakeDirectory) Search(_ context.Context, _ employee.SearchRequest) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	sequence int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.sequence++
	request.ID = fmt.Sprintf("req-%d", r.sequence)
	request.CreatedAt = time.Now()
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeLeaveRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLeaveRepo) UpdateDecision(_ context.Context, request leave.LeaveRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.requests[request.ID] = request
	return nil
}

func (r *fakeLeaveRepo) ListByApplicant(_ context.Context, applicantID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.ApplicantID == applicantID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListPendingForLeader(_ context.Context, leaderID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.LeaderID != nil && *request.LeaderID == leaderID && request.Status == leave.StatusPending {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListAwaitingManager(_ context.Context, managerID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.ManagerID == nil || *request.ManagerID != managerID {
			continue
		}
		if request.Status == leave.StatusLeaderApproved ||
			(request.Status == leave.StatusPending && request.LeaderID == nil) {
			out = append(out, request)
		}
	}
	return out, nil
}

// fakeDispatcher records leave workflow events.
type fakeDispatcher struct {
	submitted      []leave.LeaveRequest
	leaderDecided  []leave.LeaveRequest
	managerDecided []leave.LeaveRequest
}

func (d *fakeDispatcher) PresenceStarted(_ context.Context, _ employee.Employee, _ presence.PresenceSession) error {
	return nil
}

func (d *fakeDispatcher) PresenceStopped(_ context.Context, _ employee.Employee, _ presence.PresenceSession) error {
	return nil
}

func (d *fakeDispatcher) LeaveSubmitted(_ context.Context, request leave.LeaveRequest, _ employee.Employee) error {
	d.submitted = append(d.submitted, request)
	return nil
}

func (d *fakeDispatcher) LeaveLeaderDecided(_ context.Context, request leave.LeaveRequest) error {
	d.leaderDecided = append(d.leaderDecided, request)
	return nil
}

func (d *fakeDispatcher) LeaveManagerDecided(_ context.Context, request leave.LeaveRequest) error {
	d.managerDecided = append(d.managerDecided, request)
	return nil
}

type workflowFixture struct {
	svc        leave.WorkflowService
	repo       *fakeLeaveRepo
	dispatcher *fakeDispatcher
	clk        *stubClock
}

func newWorkflowFixture(t *testing.T, approvers employee.Approvers) *workflowFixture {
	t.Helper()

	applicant := employee.Employee{ID: "emp-1", Username: "bob", FullName: "Bob Bobson"}
	employees := []employee.Employee{applicant}
	if approvers.Leader != nil {
		employees = append(employees, *approvers.Leader)
	}
	if approvers.Manager != nil {
		employees = append(employees, *approvers.Manager)
	}

	repo := newFakeLeaveRepo()
	dispatcher := &fakeDispatcher{}
	clk := &stubClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := NewService(
		repo,
		newFakeEmployeeRepo(employees...),
		&fakeDirectory{approvers: map[string]employee.Approvers{"emp-1": approvers}},
		dispatcher,
		&fakeTxManager{},
		clk,
		nil,
	)

	return &workflowFixture{svc: svc, repo: repo, dispatcher: dispatcher, clk: clk}
}

func fullApprovers() employee.Approvers {
	return employee.Approvers{
		Leader:  &employee.Employee{ID: "leader-1", IsActive: true},
		Manager: &employee.Employee{ID: "mgr-1", IsActive: true},
		Team:    &employee.Team{ID: "team-1", Name: "Core"},
	}
}

func submit(t *testing.T, f *workflowFixture) leave.LeaveRequestResponse {
	t.Helper()
	created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		ApplicantID: "emp-1",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "vacation",
	})
	require.NoError(t, err)
	return created
}

func TestSubmit(t *testing.T) {
	t.Run("snapshots approvers and starts pending", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())

		created := submit(t, f)

		assert.Equal(t, string(leave.StatusPending), created.Status)
		require.NotNil(t, created.LeaderID)
		assert.Equal(t, "leader-1", *created.LeaderID)
		require.NotNil(t, created.ManagerID)
		assert.Equal(t, "mgr-1", *created.ManagerID)
		require.NotNil(t, created.TeamID)
		assert.Equal(t, "team-1", *created.TeamID)
		require.Len(t, f.dispatcher.submitted, 1)
	})

	t.Run("applicant who leads their own team is snapshotted as leader", func(t *testing.T) {
		approvers := fullApprovers()
		approvers.Leader = &employee.Employee{ID: "emp-1", IsActive: true}
		f := newWorkflowFixture(t, approvers)

		created := submit(t, f)

		require.NotNil(t, created.LeaderID)
		assert.Equal(t, "emp-1", *created.LeaderID)

		// and may therefore decide their own leader stage
		got, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "emp-1", Decision: "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusLeaderApproved), got.Status)
	})

	t.Run("no approvers still submits", func(t *testing.T) {
		f := newWorkflowFixture(t, employee.Approvers{})

		created := submit(t, f)

		assert.Equal(t, string(leave.StatusPending), created.Status)
		assert.Nil(t, created.LeaderID)
		assert.Nil(t, created.ManagerID)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())

		_, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
			ApplicantID: "emp-1",
			StartDate:   "2026-03-04",
			EndDate:     "2026-03-02",
		})

		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("single day leave is fine", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())

		created, err := f.svc.Submit(context.Background(), leave.CreateLeaveRequestRequest{
			ApplicantID: "emp-1",
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-02",
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", created.StartDate)
		assert.Equal(t, "2026-03-02", created.EndDate)
	})
}

func TestLeaderDecision(t *testing.T) {
	t.Run("approval moves to leader_approved and notifies", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		got, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID:  created.ID,
			ReviewerID: "leader-1",
			Decision:   "approved",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusLeaderApproved), got.Status)
		require.Len(t, f.dispatcher.leaderDecided, 1)
	})

	t.Run("rejection is terminal", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		got, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID:  created.ID,
			ReviewerID: "leader-1",
			Decision:   "rejected",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), got.Status)

		// manager can no longer act
		_, err = f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID:  created.ID,
			ReviewerID: "mgr-1",
			Decision:   "approved",
		})
		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	})

	t.Run("second leader decision conflicts", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "leader-1", Decision: "approved",
		})
		require.NoError(t, err)

		_, err = f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "leader-1", Decision: "rejected",
		})

		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
		assert.Len(t, f.dispatcher.leaderDecided, 1)
	})

	t.Run("invalid decision value", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "leader-1", Decision: "maybe",
		})

		assert.ErrorIs(t, err, leave.ErrInvalidDecision)
	})
}

func TestManagerDecision(t *testing.T) {
	t.Run("full chain approval", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "leader-1", Decision: "approved",
		})
		require.NoError(t, err)

		got, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "mgr-1", Decision: "approved",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusManagerApproved), got.Status)
		require.Len(t, f.dispatcher.managerDecided, 1)
	})

	t.Run("approval before leader decision conflicts", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "mgr-1", Decision: "approved",
		})

		assert.ErrorIs(t, err, leave.ErrLeaderStagePending)
	})

	t.Run("manager approves directly when applicant has no leader", func(t *testing.T) {
		approvers := fullApprovers()
		approvers.Leader = nil
		f := newWorkflowFixture(t, approvers)
		created := submit(t, f)

		got, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "mgr-1", Decision: "approved",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusManagerApproved), got.Status)
	})

	t.Run("manager may reject while leader stage is open", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		got, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "mgr-1", Decision: "rejected",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), got.Status)
	})

	t.Run("non-reviewer is forbidden", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "emp-1", Decision: "approved",
		})

		assert.ErrorIs(t, err, leave.ErrNotReviewer)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())

		_, err := f.svc.ManagerDecision(context.Background(), leave.DecisionRequest{
			RequestID: "nope", ReviewerID: "mgr-1", Decision: "approved",
		})

		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestCancelRequest(t *testing.T) {
	t.Run("applicant cancels pending request", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		got, err := f.svc.Cancel(context.Background(), created.ID, "emp-1")

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusCancelled), got.Status)
	})

	t.Run("reviewer cannot cancel", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.Cancel(context.Background(), created.ID, "leader-1")

		assert.ErrorIs(t, err, leave.ErrNotApplicant)
	})

	t.Run("cancelled request blocks later decisions", func(t *testing.T) {
		f := newWorkflowFixture(t, fullApprovers())
		created := submit(t, f)

		_, err := f.svc.Cancel(context.Background(), created.ID, "emp-1")
		require.NoError(t, err)

		_, err = f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
			RequestID: created.ID, ReviewerID: "leader-1", Decision: "approved",
		})
		assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	})
}

func TestListForReview(t *testing.T) {
	f := newWorkflowFixture(t, fullApprovers())
	created := submit(t, f)

	queues, err := f.svc.ListForReview(context.Background(), "leader-1")
	require.NoError(t, err)
	require.Len(t, queues.AsLeader, 1)
	assert.Equal(t, created.ID, queues.AsLeader[0].ID)
	assert.Empty(t, queues.AsManager)

	// not in the manager queue until the leader approves
	queues, err = f.svc.ListForReview(context.Background(), "mgr-1")
	require.NoError(t, err)
	assert.Empty(t, queues.AsManager)

	_, err = f.svc.LeaderDecision(context.Background(), leave.DecisionRequest{
		RequestID: created.ID, ReviewerID: "leader-1", Decision: "approved",
	})
	require.NoError(t, err)

	queues, err = f.svc.ListForReview(context.Background(), "mgr-1")
	require.NoError(t, err)
	require.Len(t, queues.AsManager, 1)
	assert.Equal(t, created.ID, queues.AsManager[0].ID)

	queues, err = f.svc.ListForReview(context.Background(), "leader-1")
	require.NoError(t, err)
	assert.Empty(t, queues.AsLeader)
}
