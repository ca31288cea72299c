package stubapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/core/team"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("an employee with this email already exists")
	ErrBadOTP      = errors.New("invalid or expired code")
)

// Store is the dev server's in-memory database. Every table is a map guarded
// by one mutex; IDs are handed out from per-table counters.
type Store struct {
	mu sync.RWMutex

	employees map[int]*employeeRow
	tasks     map[int]*task.Task
	hours     map[int][]task.DailyHourEntry
	teams     map[int]*team.Team
	otps      map[string]otpRow // keyed by email

	employeePK, taskPK, teamPK int
}

type employeeRow struct {
	employee.Employee
	PasswordHash []byte
}

type otpRow struct {
	Code      string
	ExpiresAt time.Time
	Username  string // carried from send-otp to register
}

func NewStore() *Store {
	return &Store{
		employees: make(map[int]*employeeRow),
		tasks:     make(map[int]*task.Task),
		hours:     make(map[int][]task.DailyHourEntry),
		teams:     make(map[int]*team.Team),
		otps:      make(map[string]otpRow),
	}
}

// ---- employees

func (s *Store) CreateEmployee(e employee.Employee, password string) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.employees {
		if !row.IsDeleted && strings.EqualFold(row.Email, e.Email) {
			return employee.Employee{}, ErrEmailExists
		}
	}

	if e.ID == 0 {
		s.employeePK++
		e.ID = s.employeePK
	} else if e.ID > s.employeePK {
		s.employeePK = e.ID
	}
	e.IsActive = true
	e.CreatedAt = time.Now().UTC()

	row := &employeeRow{Employee: e}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return employee.Employee{}, err
		}
		row.PasswordHash = hash
	}
	s.employees[e.ID] = row
	return e, nil
}

func (s *Store) GetEmployee(id int) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row, ok := s.employees[id]; ok {
		return row.Employee, nil
	}
	return employee.Employee{}, ErrNotFound
}

func (s *Store) GetEmployeeByEmail(email string) (employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row := s.byEmail(email)
	if row == nil {
		return employee.Employee{}, ErrNotFound
	}
	return row.Employee, nil
}

// EmailTaken reports whether an active account already holds email.
func (s *Store) EmailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byEmail(email) != nil
}

// byEmail is called with s.mu held.
func (s *Store) byEmail(email string) *employeeRow {
	for _, row := range s.employees {
		if strings.EqualFold(row.Email, email) && !row.IsDeleted {
			return row
		}
	}
	return nil
}

func (s *Store) CheckPassword(employeeID int, password string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.employees[employeeID]
	if !ok {
		return ErrNotFound
	}
	return bcrypt.CompareHashAndPassword(row.PasswordHash, []byte(password))
}

func (s *Store) SetPassword(employeeID int, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.employees[employeeID]
	if !ok {
		return ErrNotFound
	}
	row.PasswordHash = hash
	return nil
}

func (s *Store) UpdateEmployee(id int, form employee.UpdateEmployee) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, ErrNotFound
	}
	row.Username = form.Username
	row.Email = form.Email
	row.RoleID = form.RoleID
	row.ManagerID = form.ManagerID
	return row.Employee, nil
}

func (s *Store) SetDeleted(id int, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.employees[id]
	if !ok {
		return ErrNotFound
	}
	row.IsDeleted = deleted
	if deleted {
		now := time.Now().UTC()
		row.DeletedAt = &now
	} else {
		row.DeletedAt = nil
	}
	return nil
}

func (s *Store) HardDelete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *Store) SetRole(id int, role employee.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.employees[id]
	if !ok {
		return ErrNotFound
	}
	row.RoleID = role
	return nil
}

func (s *Store) SetManager(id int, managerID *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.employees[id]
	if !ok {
		return ErrNotFound
	}
	row.ManagerID = managerID
	return nil
}

// QueryEmployees pages through (active or deleted) employees, optionally
// filtered by a case-insensitive username/email search, ordered by ID.
func (s *Store) QueryEmployees(q employee.Query, deleted bool) employee.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(q.SearchQuery)
	matches := make([]employee.Employee, 0, len(s.employees))
	for _, row := range s.employees {
		if row.IsDeleted != deleted {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.Username), search) &&
			!strings.Contains(strings.ToLower(row.Email), search) {
			continue
		}
		matches = append(matches, row.Employee)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	start, end, _, pages := task.PageBounds(len(matches), q.Page, q.PageSize)
	return employee.Page{
		Employees:  matches[start:end],
		TotalCount: len(matches),
		PageCount:  pages,
	}
}

func (s *Store) EmployeesOfManager(managerID int) []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]employee.Employee, 0)
	for _, row := range s.employees {
		if row.IsDeleted || row.ManagerID == nil || *row.ManagerID != managerID {
			continue
		}
		reports = append(reports, row.Employee)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

func (s *Store) Managers() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	managers := make([]employee.Employee, 0)
	for _, row := range s.employees {
		if !row.IsDeleted && row.RoleID == employee.RoleManager {
			managers = append(managers, row.Employee)
		}
	}
	sort.Slice(managers, func(i, j int) bool { return managers[i].ID < managers[j].ID })
	return managers
}

// ---- OTP

func (s *Store) PutOTP(email, code, username string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[strings.ToLower(email)] = otpRow{
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
		Username:  username,
	}
}

// CheckOTP validates a code without consuming it.
func (s *Store) CheckOTP(email, code string) (otpRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.otps[strings.ToLower(email)]
	if !ok || row.Code != code || time.Now().After(row.ExpiresAt) {
		return otpRow{}, ErrBadOTP
	}
	return row, nil
}

func (s *Store) ConsumeOTP(email, code string) (otpRow, error) {
	row, err := s.CheckOTP(email, code)
	if err != nil {
		return otpRow{}, err
	}
	s.mu.Lock()
	delete(s.otps, strings.ToLower(email))
	s.mu.Unlock()
	return row, nil
}

// ---- tasks

func (s *Store) CreateTask(t task.Task) task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskPK++
	t.ID = s.taskPK
	t.Normalize()
	s.tasks[t.ID] = &t
	return t
}

func (s *Store) GetTask(id int) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tasks[id]; ok {
		return *t, nil
	}
	return task.Task{}, ErrNotFound
}

func (s *Store) UpdateTask(id int, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	t.ID = id
	t.Normalize()
	s.tasks[id] = &t
	return nil
}

func (s *Store) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	delete(s.hours, id)
	return nil
}

// QueryTasks returns employeeID's tasks matching keep, ordered by ID.
func (s *Store) QueryTasks(employeeID int, keep func(task.Task) bool) []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.EmployeeID != employeeID {
			continue
		}
		if keep != nil && !keep(*t) {
			continue
		}
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// ---- daily hours

func (s *Store) AppendHours(taskID int, hoursSpent float64, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return ErrNotFound
	}
	s.hours[taskID] = append(s.hours[taskID], task.DailyHourEntry{
		TaskID:     taskID,
		Date:       day,
		HoursSpent: hoursSpent,
	})
	return nil
}

func (s *Store) DailyHours(taskID int) []task.DailyHourEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]task.DailyHourEntry, len(s.hours[taskID]))
	copy(entries, s.hours[taskID])
	return entries
}

// ---- teams

func (s *Store) CreateTeam(t team.Team) team.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamPK++
	t.ID = s.teamPK
	if t.Members == nil {
		t.Members = []team.Member{}
	}
	s.teams[t.ID] = &t
	return t
}

func (s *Store) GetTeam(id int) (team.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.teams[id]; ok {
		return *t, nil
	}
	return team.Team{}, ErrNotFound
}

func (s *Store) TeamsOfManager(managerID int) []team.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]team.Team, 0)
	for _, t := range s.teams {
		if t.ManagerID == managerID {
			teams = append(teams, *t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams
}

func (s *Store) TeamsOfEmployee(employeeID int) []team.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]team.Team, 0)
	for _, t := range s.teams {
		if t.HasMember(employeeID) {
			teams = append(teams, *t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams
}

func (s *Store) AddTeamMembers(teamID int, employeeIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range employeeIDs {
		row, ok := s.employees[id]
		if !ok || row.IsDeleted {
			return ErrNotFound
		}
		if t.HasMember(id) {
			continue
		}
		t.Members = append(t.Members, team.Member{
			EmployeeID: id,
			Username:   row.Username,
			Email:      row.Email,
			JoinedAt:   time.Now().UTC(),
		})
	}
	return nil
}

func (s *Store) RemoveTeamMember(teamID, employeeID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return ErrNotFound
	}
	for i, m := range t.Members {
		if m.EmployeeID == employeeID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
