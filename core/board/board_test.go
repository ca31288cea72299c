package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/session"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/core/team"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

// stubAPI implements the API methods tests exercise; anything else panics.
type stubAPI struct {
	API

	mu sync.Mutex

	managerEmployees func(managerID int) ([]employee.Employee, error)
	tasksForDate     func(employeeID int, date time.Time) ([]task.Task, error)
	managerTeams     func(managerID int) ([]team.Team, error)
	teamMembers      func(teamID int) ([]team.Member, error)
	dailyHours       func(taskID int) ([]task.DailyHourEntry, error)

	assigned []restapi.AssignedTask
	updated  []task.Task
}

func (s *stubAPI) ManagerEmployees(_ context.Context, managerID int) ([]employee.Employee, error) {
	return s.managerEmployees(managerID)
}

func (s *stubAPI) TasksForDate(_ context.Context, employeeID int, date time.Time) ([]task.Task, error) {
	return s.tasksForDate(employeeID, date)
}

func (s *stubAPI) ManagerTeams(_ context.Context, managerID int) ([]team.Team, error) {
	if s.managerTeams == nil {
		return nil, nil
	}
	return s.managerTeams(managerID)
}

func (s *stubAPI) TeamMembers(_ context.Context, teamID int) ([]team.Member, error) {
	return s.teamMembers(teamID)
}

func (s *stubAPI) AssignTask(_ context.Context, t restapi.AssignedTask) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assigned = append(s.assigned, t)
	return task.Task{ID: len(s.assigned), EmployeeID: t.EmployeeID}, nil
}

func (s *stubAPI) DailyHours(_ context.Context, taskID int) ([]task.DailyHourEntry, error) {
	return s.dailyHours(taskID)
}

func (s *stubAPI) UpdateTask(_ context.Context, id int, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, t)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testBoard(t *testing.T, api API, role employee.Role) *Board {
	t.Helper()
	store, err := session.NewStore(t.TempDir() + "/store.json")
	require.NoError(t, err)
	sess := session.Session{EmployeeID: 100, Username: "boss", Role: role}
	conf := core.Config{ReminderWindowStart: 9, ReminderWindowEnd: 18}
	return New(sess, api, store, conf, nopLogger{})
}

func TestBoardRoleDispatch(t *testing.T) {
	b := testBoard(t, &stubAPI{}, employee.RoleUser)
	assert.NotNil(t, b.Tasks())

	_, err := b.Manager()
	assert.Equal(t, ErrWrongRole, err)
	_, err = b.Directory()
	assert.Equal(t, ErrWrongRole, err)

	b = testBoard(t, &stubAPI{}, employee.RoleAdmin)
	_, err = b.Manager()
	assert.NoError(t, err)
	_, err = b.Directory()
	assert.NoError(t, err)
}

func TestManagerRefresh(t *testing.T) {
	date := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	t.Run("single fetch failure degrades to empty list", func(t *testing.T) {
		// scenario: one report's task fetch fails; aggregation still
		// succeeds with that row empty and stats counting the rest
		api := &stubAPI{
			managerEmployees: func(int) ([]employee.Employee, error) {
				return []employee.Employee{{ID: 1, Username: "ann"}, {ID: 2, Username: "ben"}}, nil
			},
			tasksForDate: func(employeeID int, _ time.Time) ([]task.Task, error) {
				if employeeID == 2 {
					return nil, errors.New("boom")
				}
				return []task.Task{{ID: 10, EmployeeID: 1, Status: task.StatusCompleted}}, nil
			},
		}
		b := testBoard(t, api, employee.RoleManager)
		mgr, err := b.Manager()
		require.NoError(t, err)

		agg, err := mgr.Refresh(context.Background(), date)
		require.NoError(t, err)
		require.Len(t, agg.Employees, 2)
		assert.Equal(t, 1, agg.Employees[0].Employee.ID)
		assert.Len(t, agg.Employees[0].Tasks, 1)
		assert.Empty(t, agg.Employees[1].Tasks)
		assert.Equal(t, 1, agg.Stats.Completed)
		assert.Equal(t, 1, agg.Stats.TotalTasks)
		assert.Same(t, agg, mgr.Current())
	})

	t.Run("employee list failure is fatal", func(t *testing.T) {
		api := &stubAPI{
			managerEmployees: func(int) ([]employee.Employee, error) {
				return nil, errors.New("boom")
			},
		}
		b := testBoard(t, api, employee.RoleManager)
		mgr, _ := b.Manager()

		_, err := mgr.Refresh(context.Background(), date)
		assert.Error(t, err)
		assert.Nil(t, mgr.Current())
	})

	t.Run("superseded cycle is discarded", func(t *testing.T) {
		release := make(chan struct{})
		slowStarted := make(chan struct{}, 1)
		var calls int
		var mu sync.Mutex

		api := &stubAPI{
			managerEmployees: func(int) ([]employee.Employee, error) {
				return []employee.Employee{{ID: 1, Username: "ann"}}, nil
			},
		}
		api.tasksForDate = func(int, time.Time) ([]task.Task, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				slowStarted <- struct{}{}
				<-release // stall the first cycle until the second wins
				return []task.Task{{ID: 1, Status: task.StatusNotStarted}}, nil
			}
			return []task.Task{{ID: 2, Status: task.StatusCompleted}}, nil
		}

		b := testBoard(t, api, employee.RoleManager)
		mgr, _ := b.Manager()

		var wg sync.WaitGroup
		wg.Add(1)
		var staleAgg *Aggregation
		var staleErr error
		go func() {
			defer wg.Done()
			staleAgg, staleErr = mgr.Refresh(context.Background(), date)
		}()

		<-slowStarted
		fresh, err := mgr.Refresh(context.Background(), date)
		require.NoError(t, err)
		close(release)
		wg.Wait()

		// the slow first cycle never overwrites the fresh result
		assert.Nil(t, staleAgg)
		assert.Error(t, staleErr)
		assert.Same(t, fresh, mgr.Current())
		assert.Equal(t, 2, fresh.Employees[0].Tasks[0].ID)
	})
}

func TestComputeStats(t *testing.T) {
	rows := []EmployeeTasks{
		{Tasks: []task.Task{{Status: task.StatusCompleted}, {Status: task.StatusInProgress}}},
		{Tasks: []task.Task{{Status: task.StatusNotStarted}}},
		{Tasks: nil},
	}
	teams := []team.Team{{ID: 1}, {ID: 2}}

	stats := ComputeStats(rows, teams)
	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 2, stats.TotalTeams)
	assert.Equal(t, 3, stats.TotalTasks)
	// per-status counts always sum to the total
	assert.Equal(t, stats.TotalTasks, stats.Completed+stats.InProgress+stats.NotStarted)
}

func TestEmployeeTasksDerivations(t *testing.T) {
	row := EmployeeTasks{Tasks: []task.Task{
		{Status: task.StatusCompleted},
		{Status: task.StatusCompleted},
		{Status: task.StatusInProgress},
		{Status: "Blocked"}, // unknown, counts as not started
	}}

	t.Run("progress percentages", func(t *testing.T) {
		p := row.Progress()
		assert.Equal(t, Progress{NotStarted: 25, InProgress: 25, Completed: 50}, p)
		assert.Equal(t, Progress{}, EmployeeTasks{}.Progress())
	})

	t.Run("summary string", func(t *testing.T) {
		assert.Equal(t, "2 Completed, 1 In Progress, 1 Not Started", row.Summary())
		assert.Equal(t, "No Tasks", EmployeeTasks{}.Summary())
	})
}

func TestFilterEmployees(t *testing.T) {
	completed := task.StatusCompleted
	rows := []EmployeeTasks{
		{Employee: employee.Employee{ID: 1, Username: "Alice"}, Tasks: []task.Task{
			{ID: 1, Status: task.StatusCompleted}, {ID: 2, Status: task.StatusInProgress},
		}},
		{Employee: employee.Employee{ID: 2, Username: "Bob"}, Tasks: []task.Task{
			{ID: 3, Status: task.StatusInProgress},
		}},
	}

	t.Run("search by username", func(t *testing.T) {
		got := FilterEmployees(rows, "ali", nil)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].Employee.ID)
	})

	t.Run("status filter keeps rows, narrows tasks", func(t *testing.T) {
		got := FilterEmployees(rows, "", &completed)
		require.Len(t, got, 2)
		require.Len(t, got[0].Tasks, 1)
		assert.Equal(t, task.StatusCompleted, got[0].Tasks[0].Status)
		assert.Empty(t, got[1].Tasks)

		// filtered stats only count the filter's status
		stats := ComputeStats(got, nil)
		assert.Equal(t, stats.TotalTasks, stats.Completed)

		// input rows untouched
		assert.Len(t, rows[0].Tasks, 2)
	})
}

func TestManagerAssign(t *testing.T) {
	form := func() Assignment {
		return Assignment{
			Topic:     "Quarterly report",
			Priority:  2,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-08",
		}
	}

	t.Run("team members dedupe against selected employees", func(t *testing.T) {
		// scenario: 1 selected employee + 1 team of 2 members, one of
		// them the same employee -> exactly 2 creation calls
		api := &stubAPI{
			teamMembers: func(teamID int) ([]team.Member, error) {
				return []team.Member{{EmployeeID: 5}, {EmployeeID: 6}}, nil
			},
		}
		b := testBoard(t, api, employee.RoleManager)
		mgr, _ := b.Manager()

		f := form()
		f.EmployeeIDs = []int{5}
		f.TeamIDs = []int{77}
		report, err := mgr.Assign(context.Background(), f)
		require.NoError(t, err)
		assert.True(t, report.AllSucceeded())
		require.Len(t, report.Results, 2)
		require.Len(t, api.assigned, 2)

		ids := []int{api.assigned[0].EmployeeID, api.assigned[1].EmployeeID}
		assert.ElementsMatch(t, []int{5, 6}, ids)
		for _, at := range api.assigned {
			assert.Equal(t, "Quarterly report", at.Topic)
			assert.Equal(t, 100, at.AssignedBy)
			assert.Equal(t, string(task.StatusNotStarted), at.Status)
		}
	})

	t.Run("empty selection sends nothing", func(t *testing.T) {
		api := &stubAPI{}
		b := testBoard(t, api, employee.RoleManager)
		mgr, _ := b.Manager()

		_, err := mgr.Assign(context.Background(), form())
		assert.Equal(t, ErrEmptySelection, errors.Cause(err))
		assert.Empty(t, api.assigned)
	})

	t.Run("invalid form sends nothing", func(t *testing.T) {
		api := &stubAPI{}
		b := testBoard(t, api, employee.RoleManager)
		mgr, _ := b.Manager()

		f := form()
		f.EmployeeIDs = []int{5}
		f.Topic = ""
		_, err := mgr.Assign(context.Background(), f)
		assert.Error(t, err)
		assert.Empty(t, api.assigned)
	})
}

func TestTaskBoardComplete(t *testing.T) {
	// completedHours comes from the daily-hours log, not the cached value
	api := &stubAPI{
		dailyHours: func(taskID int) ([]task.DailyHourEntry, error) {
			return []task.DailyHourEntry{
				{TaskID: taskID, HoursSpent: 5},
				{TaskID: taskID, HoursSpent: 4.5},
				{TaskID: taskID, HoursSpent: 3},
			}, nil
		},
	}
	b := testBoard(t, api, employee.RoleUser)

	stale := task.Task{ID: 9, Status: task.StatusInProgress, CompletedHours: 2}
	require.NoError(t, b.Tasks().Complete(context.Background(), stale))

	require.Len(t, api.updated, 1)
	assert.Equal(t, task.StatusCompleted, api.updated[0].Status)
	assert.Equal(t, 12.5, api.updated[0].CompletedHours)
}

func TestActions(t *testing.T) {
	var a Actions
	assert.False(t, a.Active("soft-delete-42"))
	assert.True(t, a.Start("soft-delete-42"))
	assert.True(t, a.Active("soft-delete-42"))

	// second start of the same action is refused, others are unaffected
	assert.False(t, a.Start("soft-delete-42"))
	assert.True(t, a.Start("soft-delete-43"))

	a.Done("soft-delete-42")
	assert.False(t, a.Active("soft-delete-42"))
	assert.True(t, a.Start("soft-delete-42"))
}
