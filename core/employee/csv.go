package employee

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core"
)

var (
	ErrMissingHeader = errors.New("csv: missing header row")
	ErrEmptyFile     = errors.New("csv: no records")
)

// ImportRecord is one bulk-import row bound for the admin batch-insert call.
// EmployeeID is optional; a literal "null" (or empty) managerID means no
// manager.
type ImportRecord struct {
	EmployeeID *int   `json:"employeeId,omitempty"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	RoleID     Role   `json:"roleID" validate:"required,min=1,max=3"`
	ManagerID  *int   `json:"managerID"`
}

func (ir *ImportRecord) Validate() error {
	ir.Username = core.CleanString(ir.Username)
	ir.Email = core.CleanString(ir.Email, true /* lower */)
	return core.Validate.Struct(ir)
}

// ParseImportCSV reads a header-keyed CSV of employee records. Recognized
// columns are employeeId, username, email, roleID and managerID; column order
// is free and extra columns are ignored. Each row is validated before it is
// returned, and the failing row number is on the error.
func ParseImportCSV(r io.Reader) ([]ImportRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "csv: reading header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(core.CleanString(name))] = i
	}

	var records []ImportRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "csv: line %d", line)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return core.CleanString(row[idx])
		}

		rec := ImportRecord{
			Username: field("username"),
			Email:    field("email"),
		}
		if v := field("employeeid"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrapf(err, "csv: line %d: employeeId", line)
			}
			rec.EmployeeID = &id
		}
		if v := field("roleid"); v != "" {
			roleID, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrapf(err, "csv: line %d: roleID", line)
			}
			rec.RoleID = Role(roleID)
		}
		if v := field("managerid"); v != "" && !strings.EqualFold(v, "null") {
			id, err := strconv.Atoi(v)
			if err != nil {
				return nil, errors.Wrapf(err, "csv: line %d: managerID", line)
			}
			rec.ManagerID = &id
		}

		if err = rec.Validate(); err != nil {
			return nil, errors.Wrapf(err, "csv: line %d", line)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}
