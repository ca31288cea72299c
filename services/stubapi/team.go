package stubapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/core/team"
)

type teamAPI struct {
	opts *Options
}

func registerTeamAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := teamAPI{opts: opts}

	tg := g.Group("/Team", jwt)
	tg.GET("/manager/:managerId", api.managerTeams, roleMiddleware(employee.RoleManager, employee.RoleAdmin))
	tg.GET("/employee/:employeeId", api.employeeTeams)
	tg.GET("/members/:teamId", api.members)
	tg.POST("/create", api.create, roleMiddleware(employee.RoleManager, employee.RoleAdmin))
	tg.POST("/addMembers", api.addMembers, roleMiddleware(employee.RoleManager, employee.RoleAdmin))
	tg.DELETE("/removeMember", api.removeMember, roleMiddleware(employee.RoleManager, employee.RoleAdmin))
}

func pathInt(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHTTPNotFound
	}
	return v, nil
}

func (api teamAPI) managerTeams(ctx echo.Context) error {
	managerID, err := pathInt(ctx, "managerId")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.Store.TeamsOfManager(managerID))
}

func (api teamAPI) employeeTeams(ctx echo.Context) error {
	employeeID, err := pathInt(ctx, "employeeId")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.opts.Store.TeamsOfEmployee(employeeID))
}

func (api teamAPI) members(ctx echo.Context) error {
	teamID, err := pathInt(ctx, "teamId")
	if err != nil {
		return err
	}
	t, err := api.opts.Store.GetTeam(teamID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t.Members)
}

func (api teamAPI) create(ctx echo.Context) error {
	var form team.NewTeam
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if form.ManagerID == 0 {
		// default to the caller
		if id, err := contextEmployeeID(ctx); err == nil {
			form.ManagerID = id
		}
	}
	if err := form.Validate(); err != nil {
		return err
	}

	created := api.opts.Store.CreateTeam(team.Team{
		Name:        form.Name,
		Description: form.Description,
		ManagerID:   form.ManagerID,
	})
	return ctx.JSON(http.StatusCreated, created)
}

func (api teamAPI) addMembers(ctx echo.Context) error {
	var body struct {
		TeamID      int   `json:"teamId"`
		EmployeeIDs []int `json:"employeeIds"`
	}
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if err := api.opts.Store.AddTeamMembers(body.TeamID, body.EmployeeIDs); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

func (api teamAPI) removeMember(ctx echo.Context) error {
	var body struct {
		TeamID     int `json:"teamId"`
		EmployeeID int `json:"employeeId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if err := api.opts.Store.RemoveTeamMember(body.TeamID, body.EmployeeID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}
