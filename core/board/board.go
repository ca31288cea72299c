package board

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/session"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/core/team"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

var (
	ErrEmptySelection = errors.New("nothing selected")
	ErrWrongRole      = errors.New("operation not available for this role")
)

// API is the remote surface the boards consume. *restapi.Client satisfies it.
type API interface {
	// tasks
	TasksForDate(ctx context.Context, employeeID int, date time.Time) ([]task.Task, error)
	EmployeeTasks(ctx context.Context, employeeID int) ([]task.Task, error)
	PrivateTasks(ctx context.Context, employeeID int) ([]task.Task, error)
	AssignedTasks(ctx context.Context, employeeID int) ([]task.Task, error)
	ActiveTasks(ctx context.Context, employeeID int) ([]task.Task, error)
	OverdueTasks(ctx context.Context, employeeID int) ([]task.Task, error)
	CreateTask(ctx context.Context, form task.NewTask) (task.Task, error)
	UpdateTask(ctx context.Context, id int, t task.Task) error
	DeleteTask(ctx context.Context, id int) error
	LogHours(ctx context.Context, taskID int, entry task.HoursEntry) error
	DailyHours(ctx context.Context, taskID int) ([]task.DailyHourEntry, error)

	// manager
	ManagerEmployees(ctx context.Context, managerID int) ([]employee.Employee, error)
	AssignTask(ctx context.Context, t restapi.AssignedTask) (task.Task, error)

	// teams
	ManagerTeams(ctx context.Context, managerID int) ([]team.Team, error)
	EmployeeTeams(ctx context.Context, employeeID int) ([]team.Team, error)
	TeamMembers(ctx context.Context, teamID int) ([]team.Member, error)
	CreateTeam(ctx context.Context, form team.NewTeam) (team.Team, error)
	AddTeamMembers(ctx context.Context, teamID int, employeeIDs []int) error
	RemoveTeamMember(ctx context.Context, teamID, employeeID int) error

	// admin
	AdminEmployees(ctx context.Context, q employee.Query) (employee.Page, error)
	AdminDeletedEmployees(ctx context.Context, q employee.Query) (employee.Page, error)
	AdminManagers(ctx context.Context) ([]employee.Employee, error)
	CreateEmployee(ctx context.Context, form employee.NewEmployee) (employee.Employee, error)
	BatchInsertEmployees(ctx context.Context, records []employee.ImportRecord) error
	EditEmployee(ctx context.Context, id int, form employee.UpdateEmployee) error
	SoftDeleteEmployee(ctx context.Context, id int) error
	HardDeleteEmployee(ctx context.Context, id int) error
	RestoreEmployee(ctx context.Context, id int) error
	BatchUpdateRoles(ctx context.Context, ids []int, role employee.Role) error
	BatchUpdateManagers(ctx context.Context, ids []int, managerID *int) error
	BatchDeleteEmployees(ctx context.Context, ids []int) error
	BatchHardDeleteEmployees(ctx context.Context, ids []int) error
	BatchRestoreEmployees(ctx context.Context, ids []int) error
}

var _ API = (*restapi.Client)(nil)

// Board is the role-resolved entry point. The concrete view (TaskBoard,
// Manager, Directory) is picked once from the session role, not re-checked
// per call.
type Board struct {
	sess   session.Session
	api    API
	store  *session.Store
	logger core.Logger
	window task.ReminderWindow

	actions Actions
}

func New(sess session.Session, api API, store *session.Store, conf core.Config, logger core.Logger) *Board {
	return &Board{
		sess:   sess,
		api:    api,
		store:  store,
		logger: logger,
		window: task.ReminderWindow{Start: conf.ReminderWindowStart, End: conf.ReminderWindowEnd},
	}
}

func (b *Board) Session() session.Session { return b.sess }
func (b *Board) Actions() *Actions        { return &b.actions }

// Tasks returns the personal task board; available to every role.
func (b *Board) Tasks() *TaskBoard { return &TaskBoard{board: b} }

// Manager returns the team-review board, or ErrWrongRole.
func (b *Board) Manager() (*Manager, error) {
	if b.sess.Role != employee.RoleManager && b.sess.Role != employee.RoleAdmin {
		return nil, ErrWrongRole
	}
	return &Manager{board: b}, nil
}

// Directory returns the admin employee directory, or ErrWrongRole.
func (b *Board) Directory() (*Directory, error) {
	if b.sess.Role != employee.RoleAdmin {
		return nil, ErrWrongRole
	}
	return &Directory{board: b}, nil
}

// Actions tracks named in-flight operations so a caller can disable the one
// control an operation belongs to without blocking unrelated ones. Keys are
// action-scoped, e.g. "soft-delete-42".
type Actions struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// Start marks key in-flight; false means it already is.
func (a *Actions) Start(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		a.active = make(map[string]struct{})
	}
	if _, busy := a.active[key]; busy {
		return false
	}
	a.active[key] = struct{}{}
	return true
}

func (a *Actions) Done(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.active, key)
}

func (a *Actions) Active(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, busy := a.active[key]
	return busy
}
