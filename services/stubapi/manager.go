package stubapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/task"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

type managerAPI struct {
	opts *Options
}

func registerManagerAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := managerAPI{opts: opts}

	mg := g.Group("/Manager", jwt, roleMiddleware(employee.RoleManager, employee.RoleAdmin))
	mg.GET("/:managerId/employees", api.employees)
	mg.POST("/assign", api.assign)
}

func (api managerAPI) employees(ctx echo.Context) error {
	managerID, err := strconv.Atoi(ctx.Param("managerId"))
	if err != nil {
		return errHTTPNotFound
	}
	if _, err = api.opts.Store.GetEmployee(managerID); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.Store.EmployeesOfManager(managerID))
}

// assign creates one assigned task for one employee; the client calls it once
// per resolved assignee.
func (api managerAPI) assign(ctx echo.Context) error {
	var at restapi.AssignedTask
	if err := ctx.Bind(&at); err != nil {
		return err
	}
	if _, err := api.opts.Store.GetEmployee(at.EmployeeID); err != nil {
		return err
	}

	st, _ := task.ParseStatus(at.Status)
	created := api.opts.Store.CreateTask(task.Task{
		EmployeeID:     at.EmployeeID,
		Topic:          at.Topic,
		SubTopic:       at.SubTopic,
		Description:    at.Description,
		Priority:       at.Priority,
		ExpectedHours:  at.ExpectedHours,
		CompletedHours: at.CompletedHours,
		Date:           &at.Date,
		StartDate:      &at.StartDate,
		EndDate:        &at.EndDate,
		Status:         st,
		AssignedBy:     at.AssignedBy,
		AssignedDate:   &at.AssignedDate,
		IsAssigned:     true,
	})
	return ctx.JSON(http.StatusCreated, created)
}
