package stubapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AkashQuad/trackqfrontend/core/task"
)

type taskAPI struct {
	opts *Options
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := taskAPI{opts: opts}

	tg := g.Group("", jwt)
	tg.GET("/Tasks/details", api.detailsForDate)
	tg.GET("/Tasks/employee/:id", api.employeeTasks)
	tg.GET("/Tasks/employee/:id/private", api.privateTasks)
	tg.GET("/Tasks/employee/:id/assigned", api.assignedTasks)
	tg.GET("/tasks/status/active", api.activeTasks)
	tg.GET("/tasks/status/overdue", api.overdueTasks)
	tg.POST("/tasks", api.create)
	tg.PUT("/Tasks/:id", api.update)
	tg.DELETE("/Tasks/:id", api.delete)
	tg.POST("/tasks/:id/hours", api.logHours)
	tg.GET("/tasks/:id/daily-hours", api.dailyHours)
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHTTPNotFound
	}
	return id, nil
}

func queryEmployeeID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.QueryParam("employeeId"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "employeeId is required")
	}
	return id, nil
}

// runsOn reports whether t's date range covers day; open-ended bounds are
// unbounded.
func runsOn(t task.Task, day time.Time) bool {
	key := task.DayKey(day)
	if t.StartDate != nil && key < task.DayKey(*t.StartDate) {
		return false
	}
	if t.EndDate != nil && key > task.DayKey(*t.EndDate) {
		return false
	}
	return true
}

func (api taskAPI) detailsForDate(ctx echo.Context) error {
	employeeID, err := queryEmployeeID(ctx)
	if err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", ctx.QueryParam("dateQ"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dateQ must be yyyy-mm-dd")
	}

	tasks := api.opts.Store.QueryTasks(employeeID, func(t task.Task) bool {
		return runsOn(t, date)
	})
	return ctx.JSON(http.StatusOK, tasks)
}

func (api taskAPI) employeeTasks(ctx echo.Context) error {
	return api.filtered(ctx, nil)
}

func (api taskAPI) privateTasks(ctx echo.Context) error {
	return api.filtered(ctx, func(t task.Task) bool { return !t.IsAssigned })
}

func (api taskAPI) assignedTasks(ctx echo.Context) error {
	return api.filtered(ctx, func(t task.Task) bool { return t.IsAssigned })
}

func (api taskAPI) filtered(ctx echo.Context, keep func(task.Task) bool) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.Store.QueryTasks(id, keep))
}

func (api taskAPI) activeTasks(ctx echo.Context) error {
	employeeID, err := queryEmployeeID(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	tasks := api.opts.Store.QueryTasks(employeeID, func(t task.Task) bool {
		return t.Status != task.StatusCompleted && runsOn(t, now)
	})
	return ctx.JSON(http.StatusOK, tasks)
}

func (api taskAPI) overdueTasks(ctx echo.Context) error {
	employeeID, err := queryEmployeeID(ctx)
	if err != nil {
		return err
	}
	today := task.DayKey(time.Now())
	tasks := api.opts.Store.QueryTasks(employeeID, func(t task.Task) bool {
		return t.Status != task.StatusCompleted && t.EndDate != nil && task.DayKey(*t.EndDate) < today
	})
	return ctx.JSON(http.StatusOK, tasks)
}

func (api taskAPI) create(ctx echo.Context) error {
	var form task.NewTask
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	start, _ := time.Parse("2006-01-02", form.StartDate)
	end, _ := time.Parse("2006-01-02", form.EndDate)
	created := api.opts.Store.CreateTask(task.Task{
		EmployeeID:    form.EmployeeID,
		Topic:         form.Topic,
		SubTopic:      form.SubTopic,
		Description:   form.Description,
		Priority:      form.Priority,
		ExpectedHours: form.ExpectedHours,
		Date:          &start,
		StartDate:     &start,
		EndDate:       &end,
		Status:        task.Status(form.Status),
	})
	return ctx.JSON(http.StatusCreated, created)
}

func (api taskAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var t task.Task
	if err = ctx.Bind(&t); err != nil {
		return err
	}
	if err = api.opts.Store.UpdateTask(id, t); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (api taskAPI) delete(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.opts.Store.DeleteTask(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api taskAPI) logHours(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var entry task.HoursEntry
	if err = ctx.Bind(&entry); err != nil {
		return err
	}
	if err = entry.Validate(); err != nil {
		return err
	}
	if err = api.opts.Store.AppendHours(id, entry.HoursSpent, time.Now().UTC()); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusCreated)
}

func (api taskAPI) dailyHours(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if _, err = api.opts.Store.GetTask(id); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.Store.DailyHours(id))
}
