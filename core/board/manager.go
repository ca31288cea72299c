package board

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/core/team"
)

// EmployeeTasks is one row of the aggregated manager view: an employee and
// their tasks for the selected date.
type EmployeeTasks struct {
	Employee employee.Employee
	Tasks    []task.Task
}

// Progress is one row's task mix as rounded percentages. Zero-valued for an
// empty task list.
type Progress struct {
	NotStarted int
	InProgress int
	Completed  int
}

// Progress derives the row's status mix percentages.
func (et EmployeeTasks) Progress() Progress {
	total := len(et.Tasks)
	if total == 0 {
		return Progress{}
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) * 100 / float64(total)))
	}
	var notStarted, inProgress, completed int
	for _, t := range et.Tasks {
		switch t.Status {
		case task.StatusCompleted:
			completed++
		case task.StatusInProgress:
			inProgress++
		default:
			notStarted++
		}
	}
	return Progress{
		NotStarted: pct(notStarted),
		InProgress: pct(inProgress),
		Completed:  pct(completed),
	}
}

// Summary renders the row's status counts, e.g. "2 Completed, 1 In Progress".
func (et EmployeeTasks) Summary() string {
	if len(et.Tasks) == 0 {
		return "No Tasks"
	}
	counts := make(map[task.Status]int, len(task.Statuses))
	for _, t := range et.Tasks {
		st := t.Status
		if !st.Known() {
			st = task.StatusNotStarted
		}
		counts[st]++
	}
	var parts []string
	for _, st := range []task.Status{task.StatusCompleted, task.StatusInProgress, task.StatusNotStarted} {
		if n := counts[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}
	return strings.Join(parts, ", ")
}

// Stats are derived counts over an aggregation; always recomputed from the
// collection, never incremented.
type Stats struct {
	TotalEmployees int
	TotalTeams     int
	TotalTasks     int
	NotStarted     int
	InProgress     int
	Completed      int
}

// Aggregation is one completed fetch cycle.
type Aggregation struct {
	Date      time.Time
	Employees []EmployeeTasks
	Teams     []team.Team
	Stats     Stats
}

// Manager aggregates a manager's reports with their tasks for a date. Only
// one fetch cycle is live at a time: starting a new one cancels the previous
// and a superseded cycle's results are discarded, so a slow stale response
// can never overwrite newer state.
type Manager struct {
	board *Board

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *Aggregation
}

// Refresh runs a full aggregation cycle for date and installs the result as
// the current view. The employee-list fetch is fatal; a single employee's
// task fetch failing degrades that row to an empty task list. The team list
// is best effort.
func (m *Manager) Refresh(ctx context.Context, date time.Time) (*Aggregation, error) {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	agg, err := m.aggregate(ctx, date)
	if err != nil {
		cancel()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		// a newer cycle started while this one was in flight
		return nil, ctx.Err()
	}
	m.current = agg
	return agg, nil
}

// Current returns the latest installed aggregation, or nil before the first
// successful Refresh.
func (m *Manager) Current() *Aggregation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) aggregate(ctx context.Context, date time.Time) (*Aggregation, error) {
	b := m.board

	employees, err := b.api.ManagerEmployees(ctx, b.sess.EmployeeID)
	if err != nil {
		return nil, err
	}

	rows := make([]EmployeeTasks, len(employees))
	var wg sync.WaitGroup
	for i, emp := range employees {
		rows[i].Employee = emp

		wg.Add(1)
		go func(i, employeeID int) {
			defer wg.Done()
			tasks, err := b.api.TasksForDate(ctx, employeeID, date)
			if err != nil {
				// best effort: this row degrades to an empty task list
				b.logger.Warn("task fetch failed", "employeeID", employeeID, "err", err)
				return
			}
			rows[i].Tasks = tasks
		}(i, emp.ID)
	}
	wg.Wait()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	teams, err := b.api.ManagerTeams(ctx, b.sess.EmployeeID)
	if err != nil {
		b.logger.Warn("team fetch failed", "managerID", b.sess.EmployeeID, "err", err)
		teams = nil
	}

	return &Aggregation{
		Date:      date,
		Employees: rows,
		Teams:     teams,
		Stats:     ComputeStats(rows, teams),
	}, nil
}

// ComputeStats folds an aggregated collection into derived counts.
func ComputeStats(rows []EmployeeTasks, teams []team.Team) Stats {
	stats := Stats{TotalEmployees: len(rows), TotalTeams: len(teams)}
	for _, row := range rows {
		for _, t := range row.Tasks {
			stats.TotalTasks++
			switch t.Status {
			case task.StatusCompleted:
				stats.Completed++
			case task.StatusInProgress:
				stats.InProgress++
			default:
				stats.NotStarted++
			}
		}
	}
	return stats
}

// FilterEmployees narrows an aggregation by username search and task status.
// Rows are kept even when their task list filters down to empty, so the
// manager still sees every matching report. The input is never mutated.
func FilterEmployees(rows []EmployeeTasks, search string, status *task.Status) []EmployeeTasks {
	search = strings.ToLower(core.CleanString(search))
	out := make([]EmployeeTasks, 0, len(rows))
	for _, row := range rows {
		if search != "" && !strings.Contains(strings.ToLower(row.Employee.Username), search) {
			continue
		}
		filtered := row
		if status != nil {
			q := task.Query{Status: status}
			filtered.Tasks = q.Apply(row.Tasks)
		}
		out = append(out, filtered)
	}
	return out
}
