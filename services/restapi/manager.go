package restapi

import (
	"context"
	"time"

	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/task"
)

// ManagerEmployees lists a manager's direct reports.
func (c *Client) ManagerEmployees(ctx context.Context, managerID int) ([]employee.Employee, error) {
	var employees []employee.Employee
	if err := c.get(ctx, pathf("/api/Manager/%d/employees", managerID), nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// AssignedTask is the per-assignee payload of a task assignment.
type AssignedTask struct {
	EmployeeID     int       `json:"employeeId"`
	Topic          string    `json:"topic"`
	SubTopic       string    `json:"subTopic"`
	Description    string    `json:"description"`
	ExpectedHours  float64   `json:"expectedHours"`
	CompletedHours float64   `json:"completedHours"`
	Priority       int       `json:"priority"`
	Date           time.Time `json:"date"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	AssignedBy     int       `json:"assignedBy"`
	AssignedDate   time.Time `json:"assignedDate"`
}

// AssignTask creates one assigned task for one employee. Multi-assignee
// fan-out lives in the board layer, which calls this once per unique
// assignee.
func (c *Client) AssignTask(ctx context.Context, t AssignedTask) (task.Task, error) {
	var created task.Task
	if err := c.post(ctx, "/api/Manager/assign", &t, &created); err != nil {
		return task.Task{}, err
	}
	created.Normalize()
	return created, nil
}
