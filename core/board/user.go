package board

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/core/team"
)

// FetchMode selects which slice of the personal task collection to load.
type FetchMode string

const (
	FetchAll      FetchMode = "all"
	FetchPrivate  FetchMode = "private"
	FetchAssigned FetchMode = "assigned"
	FetchActive   FetchMode = "active"
	FetchOverdue  FetchMode = "overdue"
)

// TaskBoard is the personal task view: the owner's tasks, hour logging, and
// the daily logging reminder.
type TaskBoard struct {
	board *Board
}

// Fetch loads the owner's tasks for the given mode.
func (tb *TaskBoard) Fetch(ctx context.Context, mode FetchMode) ([]task.Task, error) {
	b := tb.board
	switch mode {
	case FetchAll:
		return b.api.EmployeeTasks(ctx, b.sess.EmployeeID)
	case FetchPrivate:
		return b.api.PrivateTasks(ctx, b.sess.EmployeeID)
	case FetchAssigned:
		return b.api.AssignedTasks(ctx, b.sess.EmployeeID)
	case FetchActive:
		return b.api.ActiveTasks(ctx, b.sess.EmployeeID)
	case FetchOverdue:
		return b.api.OverdueTasks(ctx, b.sess.EmployeeID)
	default:
		return nil, errors.Errorf("unknown fetch mode %q", mode)
	}
}

// ForDate loads the owner's tasks scoped to one calendar date.
func (tb *TaskBoard) ForDate(ctx context.Context, date time.Time) ([]task.Task, error) {
	return tb.board.api.TasksForDate(ctx, tb.board.sess.EmployeeID, date)
}

// Create adds a self-owned task.
func (tb *TaskBoard) Create(ctx context.Context, form task.NewTask) (task.Task, error) {
	form.EmployeeID = tb.board.sess.EmployeeID
	if err := form.Validate(); err != nil {
		return task.Task{}, err
	}
	return tb.board.api.CreateTask(ctx, form)
}

// Update replaces a task's editable fields.
func (tb *TaskBoard) Update(ctx context.Context, t task.Task) error {
	if t.Status == task.StatusCompleted {
		return tb.Complete(ctx, t)
	}
	return tb.board.api.UpdateTask(ctx, t.ID, t)
}

// Complete transitions a task to Completed. CompletedHours is recomputed
// from the daily-hours log at this moment, never trusted from whatever value
// the caller had cached.
func (tb *TaskBoard) Complete(ctx context.Context, t task.Task) error {
	entries, err := tb.board.api.DailyHours(ctx, t.ID)
	if err != nil {
		return errors.Wrap(err, "recomputing completed hours")
	}
	t.Status = task.StatusCompleted
	t.CompletedHours = task.TotalHours(entries)
	return tb.board.api.UpdateTask(ctx, t.ID, t)
}

// Delete removes a task, along with its local hours marker.
func (tb *TaskBoard) Delete(ctx context.Context, taskID int) error {
	if err := tb.board.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	return tb.board.store.ForgetTask(taskID)
}

// LogHours appends today's hours to a task's log and records the day locally
// so the reminder stays quiet for the rest of it.
func (tb *TaskBoard) LogHours(ctx context.Context, taskID int, hours float64) error {
	entry := task.HoursEntry{HoursSpent: hours}
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := tb.board.api.LogHours(ctx, taskID, entry); err != nil {
		return err
	}
	return tb.board.store.MarkHoursLogged(taskID, time.Now())
}

// Reminders derives the tasks needing an hours entry today. Empty outside
// the working-hours window.
func (tb *TaskBoard) Reminders(now time.Time, tasks []task.Task) []task.Task {
	logged := tb.board.store.LastHoursUpdate(now)
	return task.NeedingHours(now, tb.board.window, tasks, logged)
}

// Teams lists the teams the owner belongs to.
func (tb *TaskBoard) Teams(ctx context.Context) ([]team.Team, error) {
	return tb.board.api.EmployeeTeams(ctx, tb.board.sess.EmployeeID)
}
