package task

import (
	"strings"
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
)

// Status is the closed task status domain. The backend historically also
// emitted "Pending"; Parse normalizes it to StatusNotStarted. Values outside
// the domain are carried as-is so views can surface them (see Kanban's
// unrecognized bucket) instead of crashing.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"

	// legacy value still present in old rows
	legacyStatusPending = "Pending"
)

var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// ParseStatus normalizes a raw status string. ok is false when the value is
// outside the known domain; the raw value is still returned for display.
func ParseStatus(raw string) (Status, bool) {
	s := core.CleanString(raw)
	if strings.EqualFold(s, legacyStatusPending) {
		return StatusNotStarted, true
	}
	for _, known := range Statuses {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return Status(s), false
}

func (s Status) Known() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

type Task struct {
	ID             int        `json:"taskId"`
	EmployeeID     int        `json:"employeeId"`
	Topic          string     `json:"topic"`
	SubTopic       string     `json:"subTopic"`
	Description    string     `json:"description"`
	Priority       int        `json:"priority"` // 1..10, 1 = most urgent
	ExpectedHours  float64    `json:"expectedHours"`
	CompletedHours float64    `json:"completedHours"`
	Date           *time.Time `json:"date"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Status         Status     `json:"status"`
	AssignedBy     int        `json:"assignedBy,omitempty"`
	AssignedDate   *time.Time `json:"assignedDate,omitempty"`
	IsAssigned     bool       `json:"isAssigned,omitempty"`
}

// Normalize maps legacy status spellings onto the closed domain. It is called
// at every decode boundary; unknown values pass through untouched.
func (t *Task) Normalize() {
	if st, ok := ParseStatus(string(t.Status)); ok {
		t.Status = st
	}
}

// NormalizeAll normalizes a freshly decoded collection in place and returns it.
func NormalizeAll(tasks []Task) []Task {
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}

// DailyHourEntry is one append-only log line: hours spent on a task on a day.
type DailyHourEntry struct {
	TaskID     int       `json:"taskId"`
	Date       time.Time `json:"date"`
	HoursSpent float64   `json:"hoursSpent"`
}

// TotalHours folds a daily-hours log into the completed-hours figure persisted
// when a task transitions to Completed.
func TotalHours(entries []DailyHourEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.HoursSpent
	}
	return sum
}

// NewTask contains information needed to create or edit a task.
type NewTask struct {
	EmployeeID    int     `json:"employeeId" validate:"required,gt=0"`
	Topic         string  `json:"topic" validate:"required"`
	SubTopic      string  `json:"subTopic"`
	Description   string  `json:"description"`
	Priority      int     `json:"priority" validate:"required,min=1,max=10"`
	ExpectedHours float64 `json:"expectedHours" validate:"gte=0"`
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Status        string  `json:"status"`
}

func (nt *NewTask) Validate() error {
	nt.Topic = core.CleanString(nt.Topic)
	nt.SubTopic = core.CleanString(nt.SubTopic)
	nt.Description = core.CleanString(nt.Description)
	if nt.Status == "" {
		nt.Status = string(StatusNotStarted)
	}

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}

	st, ok := ParseStatus(nt.Status)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown status"})
	}
	nt.Status = string(st)

	start, _ := time.Parse("2006-01-02", nt.StartDate)
	end, _ := time.Parse("2006-01-02", nt.EndDate)
	if end.Before(start) {
		return core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: "end date cannot be before start date"})
	}
	return nil
}

// HoursEntry is the daily hours form.
type HoursEntry struct {
	HoursSpent float64 `json:"hoursSpent" validate:"required,gt=0,lte=24"`
}

func (he HoursEntry) Validate() error { return core.Validate.Struct(he) }

// DayKey renders t in the yyyy-mm-dd form used to key the last-hours-logged
// map and the dateQ query parameter.
func DayKey(t time.Time) string { return t.Format("2006-01-02") }
