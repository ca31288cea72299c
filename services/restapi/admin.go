package restapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/AkashQuad/trackqfrontend/core/employee"
)

// AdminEmployees lists active employees, paged and searched server-side.
func (c *Client) AdminEmployees(ctx context.Context, q employee.Query) (employee.Page, error) {
	return c.employeePage(ctx, "/api/Admin/employees", q)
}

// AdminDeletedEmployees lists soft-deleted employees, paged and searched
// server-side.
func (c *Client) AdminDeletedEmployees(ctx context.Context, q employee.Query) (employee.Page, error) {
	return c.employeePage(ctx, "/api/Admin/deleted-employees", q)
}

func (c *Client) employeePage(ctx context.Context, path string, q employee.Query) (employee.Page, error) {
	q.Clean()
	query := url.Values{
		"page":     {strconv.Itoa(q.Page)},
		"pageSize": {strconv.Itoa(q.PageSize)},
	}
	if q.SearchQuery != "" {
		query.Set("searchQuery", q.SearchQuery)
	}
	var page employee.Page
	if err := c.get(ctx, path, query, &page); err != nil {
		return employee.Page{}, err
	}
	return page, nil
}

// AdminManagers lists every employee holding the manager role.
func (c *Client) AdminManagers(ctx context.Context) ([]employee.Employee, error) {
	var managers []employee.Employee
	if err := c.get(ctx, "/api/Admin/get-managers", nil, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}

// CreateEmployee registers a single employee.
func (c *Client) CreateEmployee(ctx context.Context, form employee.NewEmployee) (employee.Employee, error) {
	var created employee.Employee
	if err := c.post(ctx, "/api/Admin/create-employee", &form, &created); err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// BatchInsertEmployees bulk-imports employee records.
func (c *Client) BatchInsertEmployees(ctx context.Context, records []employee.ImportRecord) error {
	return c.post(ctx, "/api/Admin/batch-insert", records, nil)
}

// EditEmployee updates an employee record.
func (c *Client) EditEmployee(ctx context.Context, id int, form employee.UpdateEmployee) error {
	return c.put(ctx, pathf("/api/Admin/edit-employee/%d", id), &form, nil)
}

// SoftDeleteEmployee flips an employee's deleted flag; restorable.
func (c *Client) SoftDeleteEmployee(ctx context.Context, id int) error {
	return c.delete(ctx, pathf("/api/Admin/delete-employee/%d", id), nil)
}

// HardDeleteEmployee removes an employee record for good.
func (c *Client) HardDeleteEmployee(ctx context.Context, id int) error {
	return c.delete(ctx, pathf("/api/Admin/hard-delete-employee/%d", id), nil)
}

// RestoreEmployee recovers a soft-deleted employee.
func (c *Client) RestoreEmployee(ctx context.Context, id int) error {
	return c.put(ctx, pathf("/api/Admin/restore-employee/%d", id), nil, nil)
}

// Batch admin mutations. Each takes the selected employee IDs; the board
// layer enforces the non-empty-selection precondition before calling.

// RoleUpdate and ManagerUpdate are the per-employee elements of the batch
// update payloads.
type (
	RoleUpdate struct {
		EmployeeID int           `json:"employeeId"`
		RoleID     employee.Role `json:"roleId"`
	}

	ManagerUpdate struct {
		EmployeeID int  `json:"employeeId"`
		ManagerID  *int `json:"managerId"`
	}
)

func (c *Client) BatchUpdateRoles(ctx context.Context, ids []int, role employee.Role) error {
	updates := make([]RoleUpdate, len(ids))
	for i, id := range ids {
		updates[i] = RoleUpdate{EmployeeID: id, RoleID: role}
	}
	return c.put(ctx, "/api/Admin/batch-update-roles", updates, nil)
}

func (c *Client) BatchUpdateManagers(ctx context.Context, ids []int, managerID *int) error {
	updates := make([]ManagerUpdate, len(ids))
	for i, id := range ids {
		updates[i] = ManagerUpdate{EmployeeID: id, ManagerID: managerID}
	}
	return c.put(ctx, "/api/Admin/batch-update-managers", updates, nil)
}

// The batch delete/restore endpoints take the selected IDs as a bare JSON
// array.

func (c *Client) BatchDeleteEmployees(ctx context.Context, ids []int) error {
	return c.post(ctx, "/api/Admin/batch-delete-employees", ids, nil)
}

func (c *Client) BatchHardDeleteEmployees(ctx context.Context, ids []int) error {
	return c.post(ctx, "/api/Admin/batch-hard-delete-employees", ids, nil)
}

func (c *Client) BatchRestoreEmployees(ctx context.Context, ids []int) error {
	return c.post(ctx, "/api/Admin/batch-restore-employees", ids, nil)
}
