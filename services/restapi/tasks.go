package restapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/AkashQuad/trackqfrontend/core/task"
)

// TasksForDate fetches one employee's tasks scoped to a calendar date.
func (c *Client) TasksForDate(ctx context.Context, employeeID int, date time.Time) ([]task.Task, error) {
	query := url.Values{
		"dateQ":      {task.DayKey(date)},
		"employeeId": {strconv.Itoa(employeeID)},
	}
	var tasks []task.Task
	if err := c.get(ctx, "/api/Tasks/details", query, &tasks); err != nil {
		return nil, err
	}
	return task.NormalizeAll(tasks), nil
}

// EmployeeTasks fetches the full task collection for an employee.
func (c *Client) EmployeeTasks(ctx context.Context, employeeID int) ([]task.Task, error) {
	return c.taskList(ctx, pathf("/api/Tasks/employee/%d", employeeID), nil)
}

// PrivateTasks fetches self-created (unassigned) tasks.
func (c *Client) PrivateTasks(ctx context.Context, employeeID int) ([]task.Task, error) {
	return c.taskList(ctx, pathf("/api/Tasks/employee/%d/private", employeeID), nil)
}

// AssignedTasks fetches manager-assigned tasks.
func (c *Client) AssignedTasks(ctx context.Context, employeeID int) ([]task.Task, error) {
	return c.taskList(ctx, pathf("/api/Tasks/employee/%d/assigned", employeeID), nil)
}

// ActiveTasks fetches tasks whose date range covers today.
func (c *Client) ActiveTasks(ctx context.Context, employeeID int) ([]task.Task, error) {
	return c.taskList(ctx, "/api/tasks/status/active", employeeQuery(employeeID))
}

// OverdueTasks fetches unfinished tasks whose end date has passed.
func (c *Client) OverdueTasks(ctx context.Context, employeeID int) ([]task.Task, error) {
	return c.taskList(ctx, "/api/tasks/status/overdue", employeeQuery(employeeID))
}

func (c *Client) taskList(ctx context.Context, path string, query url.Values) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.get(ctx, path, query, &tasks); err != nil {
		return nil, err
	}
	return task.NormalizeAll(tasks), nil
}

func employeeQuery(employeeID int) url.Values {
	return url.Values{"employeeId": {strconv.Itoa(employeeID)}}
}

// CreateTask creates a self-owned task.
func (c *Client) CreateTask(ctx context.Context, form task.NewTask) (task.Task, error) {
	var created task.Task
	if err := c.post(ctx, "/api/tasks", &form, &created); err != nil {
		return task.Task{}, err
	}
	created.Normalize()
	return created, nil
}

// UpdateTask replaces a task's editable fields.
func (c *Client) UpdateTask(ctx context.Context, id int, t task.Task) error {
	return c.put(ctx, pathf("/api/Tasks/%d", id), &t, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.delete(ctx, pathf("/api/Tasks/%d", id), nil)
}

// LogHours appends a daily-hours entry to a task's log.
func (c *Client) LogHours(ctx context.Context, taskID int, entry task.HoursEntry) error {
	return c.post(ctx, pathf("/api/tasks/%d/hours", taskID), entry, nil)
}

// DailyHours fetches a task's full daily-hours log.
func (c *Client) DailyHours(ctx context.Context, taskID int) ([]task.DailyHourEntry, error) {
	var entries []task.DailyHourEntry
	if err := c.get(ctx, pathf("/api/tasks/%d/daily-hours", taskID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
