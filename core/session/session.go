package session

import (
	"github.com/AkashQuad/trackqfrontend/core/employee"
)

// Session is the authenticated identity resolved from a stored token.
type Session struct {
	Token      string
	EmployeeID int
	Username   string
	Email      string
	Role       employee.Role
}

// Resolve parses token into a Session. Expired or malformed tokens fail.
func Resolve(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return Session{}, err
	}
	id, err := claims.EmployeeID()
	if err != nil {
		return Session{}, err
	}
	role, ok := claims.RoleID()
	if !ok {
		return Session{}, ErrInvalidToken
	}
	return Session{
		Token:      token,
		EmployeeID: id,
		Username:   claims.UniqueName,
		Email:      claims.Email,
		Role:       role,
	}, nil
}
