package team

import (
	"time"

	"github.com/AkashQuad/trackqfrontend/core"
)

type (
	Team struct {
		ID          int      `json:"teamId"`
		Name        string   `json:"teamName"`
		Description string   `json:"description"`
		ManagerID   int      `json:"managerId"`
		Members     []Member `json:"members"`
	}

	Member struct {
		EmployeeID int       `json:"employeeId"`
		Username   string    `json:"username"`
		Email      string    `json:"email"`
		JoinedAt   time.Time `json:"joinedAt"`
	}
)

// MemberIDs returns the member employee IDs in listing order.
func (t Team) MemberIDs() []int {
	ids := make([]int, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.EmployeeID
	}
	return ids
}

func (t Team) HasMember(employeeID int) bool {
	for _, m := range t.Members {
		if m.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// NewTeam contains information needed to create a new Team.
type NewTeam struct {
	Name        string `json:"teamName" validate:"required"`
	Description string `json:"description"`
	ManagerID   int    `json:"managerId" validate:"required,gt=0"`
}

func (nt *NewTeam) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Description = core.CleanString(nt.Description)
	return core.Validate.Struct(nt)
}

// AddMember is the add-team-member form.
type AddMember struct {
	TeamID     int `json:"teamId" validate:"required,gt=0"`
	EmployeeID int `json:"employeeId" validate:"required,gt=0"`
}

func (am AddMember) Validate() error { return core.Validate.Struct(am) }
