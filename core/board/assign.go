package board

import (
	"context"
	"sync"
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

// Assignment is the assign-task form: a task definition plus the selected
// individual employees and/or teams it goes to.
type Assignment struct {
	EmployeeIDs   []int   `json:"employeeIds"`
	TeamIDs       []int   `json:"teamIds"`
	Topic         string  `json:"topic" validate:"required"`
	SubTopic      string  `json:"subTopic"`
	Description   string  `json:"description"`
	Priority      int     `json:"priority" validate:"required,min=1,max=10"`
	ExpectedHours float64 `json:"expectedHours" validate:"gte=0"`
	StartDate     string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Status        string  `json:"status"`
}

func (a *Assignment) Validate() error {
	a.Topic = core.CleanString(a.Topic)
	a.SubTopic = core.CleanString(a.SubTopic)
	a.Description = core.CleanString(a.Description)
	if a.Status == "" {
		a.Status = string(task.StatusNotStarted)
	}
	if err := core.Validate.Struct(a); err != nil {
		return err
	}
	st, ok := task.ParseStatus(a.Status)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown status"})
	}
	a.Status = string(st)
	return nil
}

// AssigneeResult is one line of an assignment report.
type AssigneeResult struct {
	EmployeeID int
	Err        error
}

// AssignmentReport is the per-assignee outcome of a fan-out. The operation is
// all-or-partial: failed creations do not roll back the ones that succeeded.
type AssignmentReport struct {
	Results []AssigneeResult
}

func (r AssignmentReport) AllSucceeded() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return false
		}
	}
	return true
}

func (r AssignmentReport) Failed() []AssigneeResult {
	var failed []AssigneeResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Assign creates one task per resolved assignee. Team selections expand to
// their member lists at submission time and are deduplicated against the
// individually selected employees; order of first appearance is kept. An
// empty resolved set is a no-op returning ErrEmptySelection with no request
// sent.
func (m *Manager) Assign(ctx context.Context, form Assignment) (AssignmentReport, error) {
	if err := form.Validate(); err != nil {
		return AssignmentReport{}, err
	}

	assignees, err := m.resolveAssignees(ctx, form)
	if err != nil {
		return AssignmentReport{}, err
	}
	if len(assignees) == 0 {
		return AssignmentReport{}, ErrEmptySelection
	}

	now := time.Now().UTC()
	startDate, _ := time.Parse("2006-01-02", form.StartDate)
	endDate, _ := time.Parse("2006-01-02", form.EndDate)

	report := AssignmentReport{Results: make([]AssigneeResult, len(assignees))}
	var wg sync.WaitGroup
	for i, employeeID := range assignees {
		report.Results[i].EmployeeID = employeeID

		wg.Add(1)
		go func(i, employeeID int) {
			defer wg.Done()
			_, err := m.board.api.AssignTask(ctx, restapi.AssignedTask{
				EmployeeID:    employeeID,
				Topic:         form.Topic,
				SubTopic:      form.SubTopic,
				Description:   form.Description,
				ExpectedHours: form.ExpectedHours,
				Priority:      form.Priority,
				Date:          startDate,
				StartDate:     startDate,
				EndDate:       endDate,
				Status:        form.Status,
				AssignedBy:    m.board.sess.EmployeeID,
				AssignedDate:  now,
			})
			report.Results[i].Err = err
		}(i, employeeID)
	}
	wg.Wait()

	return report, nil
}

// resolveAssignees unions the selected employees with the selected teams'
// members, deduplicated, in order of first appearance.
func (m *Manager) resolveAssignees(ctx context.Context, form Assignment) ([]int, error) {
	seen := make(map[int]struct{})
	var assignees []int
	add := func(id int) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		assignees = append(assignees, id)
	}

	for _, id := range form.EmployeeIDs {
		add(id)
	}
	for _, teamID := range form.TeamIDs {
		members, err := m.board.api.TeamMembers(ctx, teamID)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			add(member.EmployeeID)
		}
	}
	return assignees, nil
}
