package restapi

import (
	"context"

	"github.com/AkashQuad/trackqfrontend/core/team"
)

// ManagerTeams lists the teams a manager owns.
func (c *Client) ManagerTeams(ctx context.Context, managerID int) ([]team.Team, error) {
	var teams []team.Team
	if err := c.get(ctx, pathf("/api/Team/manager/%d", managerID), nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// EmployeeTeams lists the teams an employee belongs to.
func (c *Client) EmployeeTeams(ctx context.Context, employeeID int) ([]team.Team, error) {
	var teams []team.Team
	if err := c.get(ctx, pathf("/api/Team/employee/%d", employeeID), nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// TeamMembers lists a team's members.
func (c *Client) TeamMembers(ctx context.Context, teamID int) ([]team.Member, error) {
	var members []team.Member
	if err := c.get(ctx, pathf("/api/Team/members/%d", teamID), nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CreateTeam creates a team owned by the calling manager.
func (c *Client) CreateTeam(ctx context.Context, form team.NewTeam) (team.Team, error) {
	var created team.Team
	if err := c.post(ctx, "/api/Team/create", &form, &created); err != nil {
		return team.Team{}, err
	}
	return created, nil
}

// AddTeamMembers adds employees to a team.
func (c *Client) AddTeamMembers(ctx context.Context, teamID int, employeeIDs []int) error {
	body := struct {
		TeamID      int   `json:"teamId"`
		EmployeeIDs []int `json:"employeeIds"`
	}{teamID, employeeIDs}
	return c.post(ctx, "/api/Team/addMembers", body, nil)
}

// RemoveTeamMember removes one employee from a team.
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, employeeID int) error {
	body := struct {
		TeamID     int `json:"teamId"`
		EmployeeID int `json:"employeeId"`
	}{teamID, employeeID}
	return c.delete(ctx, "/api/Team/removeMember", body)
}
