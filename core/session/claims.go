package session

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/AkashQuad/trackqfrontend/core/employee"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the token payload issued by the backend. The names mirror the
// .NET-style claim keys the API emits.
type Claims struct {
	jwt.StandardClaims
	NameID     string `json:"nameid"`      // employee ID as a string
	UniqueName string `json:"unique_name"` // username
	Email      string `json:"email"`
	Role       string `json:"role"`
}

func (c Claims) EmployeeID() (int, error) {
	id, err := strconv.Atoi(c.NameID)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidToken, "nameid is not numeric")
	}
	return id, nil
}

func (c Claims) RoleID() (employee.Role, bool) { return employee.ParseRole(c.Role) }

// ParseClaims decodes a token's payload without verifying the signature. The
// client never holds the signing key; it only needs the identity and role
// baked into the token, and the server re-checks the signature on every call.
func ParseClaims(token string) (Claims, error) {
	var claims Claims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return Claims{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if claims.ExpiresAt > 0 && claims.ExpiresAt <= time.Now().Unix() {
		return claims, ErrExpiredToken
	}
	return claims, nil
}
