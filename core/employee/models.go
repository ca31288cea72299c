package employee

import (
	"strings"
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
)

// Roles
const (
	RoleUser    Role = 1
	RoleManager Role = 2
	RoleAdmin   Role = 3
)

var Roles = []RoleInfo{
	{Name: "User", Value: RoleUser},
	{Name: "Manager", Value: RoleManager},
	{Name: "Admin", Value: RoleAdmin},
}

type Role int

func (r Role) Valid() bool { return r >= RoleUser && r <= RoleAdmin }

func (r Role) String() string {
	for _, ri := range Roles {
		if ri.Value == r {
			return ri.Name
		}
	}
	return "Unknown"
}

// ParseRole resolves a role from its display name, case-insensitively.
func ParseRole(name string) (Role, bool) {
	name = core.CleanString(name)
	for _, ri := range Roles {
		if strings.EqualFold(ri.Name, name) {
			return ri.Value, true
		}
	}
	return 0, false
}

type RoleInfo struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

type Employee struct {
	ID        int        `json:"employeeId"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	RoleID    Role       `json:"roleID"`
	ManagerID *int       `json:"managerID"`
	IsActive  bool       `json:"isActive"`
	IsDeleted bool       `json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (e Employee) IsManager() bool { return e.RoleID == RoleManager }
func (e Employee) IsAdmin() bool   { return e.RoleID == RoleAdmin }

// Page is one server-side page of the admin directory.
type Page struct {
	Employees  []Employee `json:"employees"`
	TotalCount int        `json:"totalCount"`
	PageCount  int        `json:"pageCount"`
}

// NewEmployee contains information needed to register a new Employee. No
// password travels with it; the backend mails a one-time code and the
// employee sets a password on first login.
type NewEmployee struct {
	Username  string `json:"username" validate:"required,min=2,alphanum_"`
	Email     string `json:"email" validate:"required,email"`
	RoleID    Role   `json:"roleID" validate:"required,min=1,max=3"`
	ManagerID *int   `json:"managerID"`
}

func (ne *NewEmployee) Validate() error {
	ne.Username = core.CleanString(ne.Username)
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	return core.Validate.Struct(ne)
}

// UpdateEmployee defines what information may be provided to modify an
// existing Employee. Empty fields fall back to the original values.
type UpdateEmployee struct {
	Username  string `json:"username" validate:"omitempty,min=2,alphanum_"`
	Email     string `json:"email" validate:"omitempty,email"`
	RoleID    Role   `json:"roleID" validate:"omitempty,min=1,max=3"`
	ManagerID *int   `json:"managerID"`
}

func (ue *UpdateEmployee) Validate(orig Employee) error {
	uname := core.CleanString(ue.Username)
	if uname != "" {
		ue.Username = uname
	} else {
		ue.Username = orig.Username
	}

	email := core.CleanString(ue.Email, true /* lower */)
	if email != "" {
		ue.Email = email
	} else {
		ue.Email = orig.Email
	}

	if ue.RoleID == 0 {
		ue.RoleID = orig.RoleID
	}
	if ue.ManagerID == nil {
		ue.ManagerID = orig.ManagerID
	}
	return core.Validate.Struct(ue)
}

// Query filters the admin directory server-side.
type Query struct {
	Page        int    `query:"page"`
	PageSize    int    `query:"pageSize"`
	SearchQuery string `query:"searchQuery"`
}

func (q *Query) Clean() {
	q.SearchQuery = core.CleanString(q.SearchQuery)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
}

// FilterByUsername returns the employees whose username contains search,
// case-insensitively. Empty search returns the input unchanged.
func FilterByUsername(employees []Employee, search string) []Employee {
	search = strings.ToLower(core.CleanString(search))
	if search == "" {
		return employees
	}
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Username), search) {
			out = append(out, e)
		}
	}
	return out
}
