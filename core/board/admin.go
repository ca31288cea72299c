package board

import (
	"context"
	"fmt"
	"io"

	"github.com/AkashQuad/trackqfrontend/core"
	"github.com/AkashQuad/trackqfrontend/core/employee"
)

// Directory is the admin employee directory: server-side paged listings,
// single and batch record mutations, and CSV bulk import.
type Directory struct {
	board *Board
}

// List fetches one page of active employees.
func (d *Directory) List(ctx context.Context, q employee.Query) (employee.Page, error) {
	return d.board.api.AdminEmployees(ctx, q)
}

// Deleted fetches one page of soft-deleted employees.
func (d *Directory) Deleted(ctx context.Context, q employee.Query) (employee.Page, error) {
	return d.board.api.AdminDeletedEmployees(ctx, q)
}

// Managers lists every manager, for the reassignment pickers.
func (d *Directory) Managers(ctx context.Context) ([]employee.Employee, error) {
	return d.board.api.AdminManagers(ctx)
}

// Create registers a single employee.
func (d *Directory) Create(ctx context.Context, form employee.NewEmployee) (employee.Employee, error) {
	if err := form.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return d.board.api.CreateEmployee(ctx, form)
}

// Edit updates one employee record.
func (d *Directory) Edit(ctx context.Context, orig employee.Employee, form employee.UpdateEmployee) error {
	if err := form.Validate(orig); err != nil {
		return err
	}
	return d.board.api.EditEmployee(ctx, orig.ID, form)
}

// SoftDelete flags one employee deleted; restorable. The action is tracked
// so the caller can disable just this row's control while in flight.
func (d *Directory) SoftDelete(ctx context.Context, id int) error {
	return d.tracked(fmt.Sprintf("soft-delete-%d", id), func() error {
		return d.board.api.SoftDeleteEmployee(ctx, id)
	})
}

// HardDelete removes one employee for good.
func (d *Directory) HardDelete(ctx context.Context, id int) error {
	return d.tracked(fmt.Sprintf("hard-delete-%d", id), func() error {
		return d.board.api.HardDeleteEmployee(ctx, id)
	})
}

// Restore recovers one soft-deleted employee.
func (d *Directory) Restore(ctx context.Context, id int) error {
	return d.tracked(fmt.Sprintf("restore-%d", id), func() error {
		return d.board.api.RestoreEmployee(ctx, id)
	})
}

func (d *Directory) tracked(key string, fn func() error) error {
	if !d.board.actions.Start(key) {
		return nil // already in flight
	}
	defer d.board.actions.Done(key)
	return fn()
}

// Batch mutations. An empty selection is a no-op: ErrEmptySelection, no
// request sent. Each batch carries one in-flight marker for the whole
// selection, keyed by the action.

func (d *Directory) BatchUpdateRoles(ctx context.Context, ids []int, role employee.Role) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	if !role.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "roleID", Error: "unknown role"})
	}
	return d.tracked("batch-role", func() error {
		return d.board.api.BatchUpdateRoles(ctx, ids, role)
	})
}

func (d *Directory) BatchUpdateManagers(ctx context.Context, ids []int, managerID *int) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	return d.tracked("batch-manager", func() error {
		return d.board.api.BatchUpdateManagers(ctx, ids, managerID)
	})
}

func (d *Directory) BatchSoftDelete(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	return d.tracked("batch-soft-delete", func() error {
		return d.board.api.BatchDeleteEmployees(ctx, ids)
	})
}

func (d *Directory) BatchHardDelete(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	return d.tracked("batch-hard-delete", func() error {
		return d.board.api.BatchHardDeleteEmployees(ctx, ids)
	})
}

func (d *Directory) BatchRestore(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	return d.tracked("batch-restore", func() error {
		return d.board.api.BatchRestoreEmployees(ctx, ids)
	})
}

// Import parses a CSV of employee records and bulk-inserts them.
func (d *Directory) Import(ctx context.Context, r io.Reader) (int, error) {
	records, err := employee.ParseImportCSV(r)
	if err != nil {
		return 0, err
	}
	if err = d.board.api.BatchInsertEmployees(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
