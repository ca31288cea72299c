package stubapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
	"github.com/AkashQuad/trackqfrontend/services/restapi"
)

type adminAPI struct {
	opts *Options
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := adminAPI{opts: opts}

	ag := g.Group("/Admin", jwt, roleMiddleware(employee.RoleAdmin))
	ag.GET("/employees", api.employees)
	ag.GET("/deleted-employees", api.deletedEmployees)
	ag.GET("/get-managers", api.managers)
	ag.POST("/create-employee", api.create)
	ag.POST("/batch-insert", api.batchInsert)
	ag.PUT("/edit-employee/:id", api.edit)
	ag.DELETE("/delete-employee/:id", api.softDelete)
	ag.DELETE("/hard-delete-employee/:id", api.hardDelete)
	ag.PUT("/restore-employee/:id", api.restore)
	ag.PUT("/batch-update-roles", api.batchUpdateRoles)
	ag.PUT("/batch-update-managers", api.batchUpdateManagers)
	ag.POST("/batch-delete-employees", api.batchSoftDelete)
	ag.POST("/batch-hard-delete-employees", api.batchHardDelete)
	ag.POST("/batch-restore-employees", api.batchRestore)
}

func (api adminAPI) employees(ctx echo.Context) error {
	return api.page(ctx, false)
}

func (api adminAPI) deletedEmployees(ctx echo.Context) error {
	return api.page(ctx, true)
}

func (api adminAPI) page(ctx echo.Context, deleted bool) error {
	var q employee.Query
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	q.Clean()
	return ctx.JSON(http.StatusOK, api.opts.Store.QueryEmployees(q, deleted))
}

func (api adminAPI) managers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.opts.Store.Managers())
}

func (api adminAPI) create(ctx echo.Context) error {
	var form employee.NewEmployee
	if err := ctx.Bind(&form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return err
	}

	created, err := api.opts.Store.CreateEmployee(employee.Employee{
		Username:  form.Username,
		Email:     form.Email,
		RoleID:    form.RoleID,
		ManagerID: form.ManagerID,
	}, "")
	if err != nil {
		return err
	}
	api.sendWelcome(created)
	return ctx.JSON(http.StatusCreated, created)
}

// sendWelcome mails a first-login code to a freshly created account.
func (api adminAPI) sendWelcome(emp employee.Employee) {
	authAPI{opts: api.opts}.issueOTP(emp.Email, emp.Username, "Your account is ready")
}

func (api adminAPI) batchInsert(ctx echo.Context) error {
	var records []employee.ImportRecord
	if err := ctx.Bind(&records); err != nil {
		return err
	}
	if len(records) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "records", Error: "no records provided"})
	}

	created := make([]employee.Employee, 0, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return core.NewValidationError(err, core.FieldError{
				Field: fmt.Sprintf("records[%d]", i), Error: err.Error(),
			})
		}
		e := employee.Employee{
			Username:  rec.Username,
			Email:     rec.Email,
			RoleID:    rec.RoleID,
			ManagerID: rec.ManagerID,
		}
		if rec.EmployeeID != nil {
			e.ID = *rec.EmployeeID
		}
		emp, err := api.opts.Store.CreateEmployee(e, "")
		if err != nil {
			return err
		}
		created = append(created, emp)
	}

	for _, emp := range created {
		api.sendWelcome(emp)
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (api adminAPI) edit(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	orig, err := api.opts.Store.GetEmployee(id)
	if err != nil {
		return err
	}
	var form employee.UpdateEmployee
	if err = ctx.Bind(&form); err != nil {
		return err
	}
	if err = form.Validate(orig); err != nil {
		return err
	}
	updated, err := api.opts.Store.UpdateEmployee(id, form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api adminAPI) softDelete(ctx echo.Context) error {
	return api.single(ctx, func(id int) error { return api.opts.Store.SetDeleted(id, true) })
}

func (api adminAPI) hardDelete(ctx echo.Context) error {
	return api.single(ctx, api.opts.Store.HardDelete)
}

func (api adminAPI) restore(ctx echo.Context) error {
	return api.single(ctx, func(id int) error { return api.opts.Store.SetDeleted(id, false) })
}

func (api adminAPI) single(ctx echo.Context, op func(int) error) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = op(id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

// The role/manager batch updates take one {employeeId, roleId|managerId}
// element per selected employee.

func (api adminAPI) batchUpdateRoles(ctx echo.Context) error {
	var updates []restapi.RoleUpdate
	if err := ctx.Bind(&updates); err != nil {
		return err
	}
	if len(updates) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "employeeIds", Error: "no employees selected"})
	}
	for _, upd := range updates {
		if !upd.RoleID.Valid() {
			return core.NewValidationError(nil, core.FieldError{Field: "roleId", Error: "unknown role"})
		}
		if err := api.opts.Store.SetRole(upd.EmployeeID, upd.RoleID); err != nil {
			return err
		}
	}
	return ctx.NoContent(http.StatusOK)
}

func (api adminAPI) batchUpdateManagers(ctx echo.Context) error {
	var updates []restapi.ManagerUpdate
	if err := ctx.Bind(&updates); err != nil {
		return err
	}
	if len(updates) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "employeeIds", Error: "no employees selected"})
	}
	for _, upd := range updates {
		if err := api.opts.Store.SetManager(upd.EmployeeID, upd.ManagerID); err != nil {
			return err
		}
	}
	return ctx.NoContent(http.StatusOK)
}

func (api adminAPI) batchSoftDelete(ctx echo.Context) error {
	return api.batchSimple(ctx, func(id int) error { return api.opts.Store.SetDeleted(id, true) })
}

func (api adminAPI) batchHardDelete(ctx echo.Context) error {
	return api.batchSimple(ctx, api.opts.Store.HardDelete)
}

func (api adminAPI) batchRestore(ctx echo.Context) error {
	return api.batchSimple(ctx, func(id int) error { return api.opts.Store.SetDeleted(id, false) })
}

// batchSimple handles the endpoints taking the selected IDs as a bare JSON
// array.
func (api adminAPI) batchSimple(ctx echo.Context, op func(int) error) error {
	var ids []int
	if err := ctx.Bind(&ids); err != nil {
		return err
	}
	return api.batch(ctx, ids, op)
}

func (api adminAPI) batch(ctx echo.Context, ids []int, op func(int) error) error {
	if len(ids) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "employeeIds", Error: "no employees selected"})
	}
	for _, id := range ids {
		if err := op(id); err != nil {
			return err
		}
	}
	return ctx.NoContent(http.StatusOK)
}
