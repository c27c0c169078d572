package presence

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

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	locked    []string
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

func (r *fakeEmployeeRepo) GetByUsername(_ context.Context, username string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Search(_ context.Context, _ employee.SearchRequest) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) LockByID(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.locked = append(r.locked, id)
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

type fakeSessionRepo struct {
	sessions map[string]presence.PresenceSession
	sequence int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]presence.PresenceSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session presence.PresenceSession) (presence.PresenceSession, error) {
	r.sequence++
	session.ID = fmt.Sprintf("sess-%d", r.sequence)
	session.CreatedAt = session.StartTime
	r.sessions[session.ID] = session
	return session, nil
}

func (r *fakeSessionRepo) HasOpenSession(_ context.Context, employeeID string) (bool, error) {
	for _, s := range r.sessions {
		if s.EmployeeID == employeeID && s.EndTime == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSessionRepo) GetLatestOpen(_ context.Context, employeeID string) (presence.PresenceSession, error) {
	var latest *presence.PresenceSession
	for _, s := range r.sessions {
		if s.EmployeeID != employeeID || s.EndTime != nil {
			continue
		}
		s := s
		if latest == nil || s.StartTime.After(latest.StartTime) {
			latest = &s
		}
	}
	if latest == nil {
		return presence.PresenceSession{}, presence.ErrNoOpenSession
	}
	return *latest, nil
}

func (r *fakeSessionRepo) Close(_ context.Context, id string, endTime time.Time) error {
	s, ok := r.sessions[id]
	if !ok || s.EndTime != nil {
		return presence.ErrSessionNotFound
	}
	s.EndTime = &endTime
	r.sessions[id] = s
	return nil
}

func (r *fakeSessionRepo) ListByEmployee(_ context.Context, employeeID string, _ int) ([]presence.PresenceSession, error) {
	var out []presence.PresenceSession
	for _, s := range r.sessions {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeTimeEntryRepo struct {
	entries []presence.TimeEntry
}

func (r *fakeTimeEntryRepo) Create(_ context.Context, entry presence.TimeEntry) (presence.TimeEntry, error) {
	entry.ID = fmt.Sprintf("entry-%d", len(r.entries)+1)
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeTimeEntryRepo) ListByEmployee(_ context.Context, employeeID string, _ int) ([]presence.TimeEntry, error) {
	var out []presence.TimeEntry
	for _, e := range r.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeDispatcher records dispatched events.
type fakeDispatcher struct {
	started []presence.PresenceSession
	stopped []presence.PresenceSession
}

func (d *fakeDispatcher) PresenceStarted(_ context.Context, _ employee.Employee, session presence.PresenceSession) error {
	d.started = append(d.started, session)
	return nil
}

func (d *fakeDispatcher) PresenceStopped(_ context.Context, _ employee.Employee, session presence.PresenceSession) error {
	d.stopped = append(d.stopped, session)
	return nil
}

func (d *fakeDispatcher) LeaveSubmitted(_ context.Context, _ leave.LeaveRequest, _ employee.Employee) error {
	return nil
}

func (d *fakeDispatcher) LeaveLeaderDecided(_ context.Context, _ leave.LeaveRequest) error {
	return nil
}

func (d *fakeDispatcher) LeaveManagerDecided(_ context.Context, _ leave.LeaveRequest) error {
	return nil
}

func newTestService(employees *fakeEmployeeRepo, sessions *fakeSessionRepo, dispatcher *fakeDispatcher, clk *stubClock) presence.TrackerService {
	return NewService(sessions, &fakeTimeEntryRepo{}, employees, dispatcher, &fakeTxManager{}, clk, nil)
}

func TestStartSession(t *testing.T) {
	worker := employee.Employee{ID: "emp-1", Username: "bob", FullName: "Bob Bobson"}
	clk := &stubClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	t.Run("creates an open session and notifies", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		dispatcher := &fakeDispatcher{}
		svc := newTestService(newFakeEmployeeRepo(worker), sessions, dispatcher, clk)

		got, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1", Location: "office"})

		require.NoError(t, err)
		assert.Equal(t, "emp-1", got.EmployeeID)
		assert.Equal(t, clk.now, got.StartTime)
		assert.Nil(t, got.EndTime)
		require.Len(t, dispatcher.started, 1)
	})

	t.Run("second start conflicts", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		dispatcher := &fakeDispatcher{}
		svc := newTestService(newFakeEmployeeRepo(worker), sessions, dispatcher, clk)

		_, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)

		_, err = svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})

		assert.ErrorIs(t, err, presence.ErrOpenSessionExists)
		assert.Len(t, dispatcher.started, 1)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := newTestService(newFakeEmployeeRepo(), newFakeSessionRepo(), &fakeDispatcher{}, clk)

		_, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "ghost"})

		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("start is allowed again after stop", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		svc := newTestService(newFakeEmployeeRepo(worker), sessions, &fakeDispatcher{}, clk)

		_, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)
		_, err = svc.StopSession(context.Background(), "emp-1")
		require.NoError(t, err)

		_, err = svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)
	})
}

func TestStopSession(t *testing.T) {
	worker := employee.Employee{ID: "emp-1", Username: "bob", FullName: "Bob Bobson"}

	t.Run("closes the open session and reports duration", func(t *testing.T) {
		clk := &stubClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
		sessions := newFakeSessionRepo()
		dispatcher := &fakeDispatcher{}
		svc := newTestService(newFakeEmployeeRepo(worker), sessions, dispatcher, clk)

		_, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)

		clk.now = clk.now.Add(3*time.Hour + 30*time.Minute)
		got, err := svc.StopSession(context.Background(), "emp-1")

		require.NoError(t, err)
		require.NotNil(t, got.DurationSeconds)
		assert.Equal(t, int64(12600), *got.DurationSeconds)
		assert.False(t, got.ClockSkewed)
		require.Len(t, dispatcher.stopped, 1)
	})

	t.Run("no open session conflicts", func(t *testing.T) {
		clk := &stubClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
		svc := newTestService(newFakeEmployeeRepo(worker), newFakeSessionRepo(), &fakeDispatcher{}, clk)

		_, err := svc.StopSession(context.Background(), "emp-1")

		assert.ErrorIs(t, err, presence.ErrNoOpenSession)
	})

	t.Run("clock skew clamps duration to zero", func(t *testing.T) {
		clk := &stubClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
		sessions := newFakeSessionRepo()
		svc := newTestService(newFakeEmployeeRepo(worker), sessions, &fakeDispatcher{}, clk)

		_, err := svc.StartSession(context.Background(), presence.StartSessionRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)

		clk.now = clk.now.Add(-time.Minute)
		got, err := svc.StopSession(context.Background(), "emp-1")

		require.NoError(t, err)
		require.NotNil(t, got.DurationSeconds)
		assert.Equal(t, int64(0), *got.DurationSeconds)
		assert.True(t, got.ClockSkewed)
	})
}

func TestSubmitTimeEntry(t *testing.T) {
	worker := employee.Employee{ID: "emp-1", Username: "bob"}
	clk := &stubClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	t.Run("records a manual entry", func(t *testing.T) {
		entries := &fakeTimeEntryRepo{}
		svc := NewService(newFakeSessionRepo(), entries, newFakeEmployeeRepo(worker), &fakeDispatcher{}, &fakeTxManager{}, clk, nil)

		got, err := svc.SubmitTimeEntry(context.Background(), presence.SubmitTimeEntryRequest{
			EmployeeID: "emp-1",
			Date:       "2026-03-02",
			Hours:      7.5,
			Project:    "migration",
		})

		require.NoError(t, err)
		assert.Equal(t, "manual", got.Source)
		assert.Equal(t, 7.5, got.Hours)
		assert.False(t, got.Approved)
	})

	t.Run("rejects out-of-range hours", func(t *testing.T) {
		svc := NewService(newFakeSessionRepo(), &fakeTimeEntryRepo{}, newFakeEmployeeRepo(worker), &fakeDispatcher{}, &fakeTxManager{}, clk, nil)

		_, err := svc.SubmitTimeEntry(context.Background(), presence.SubmitTimeEntryRequest{
			EmployeeID: "emp-1",
			Date:       "2026-03-02",
			Hours:      25,
		})

		assert.Error(t, err)
	})
}
