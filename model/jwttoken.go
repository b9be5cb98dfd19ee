package model

import "github.com/golang-jwt/jwt/v5"

// Session is the role context a signed-in user carries between screens.
type Session struct {
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role,omitempty"`
	Dashboard  Dashboard `json:"dashboard"`
}

func (s Session) IsHead() bool {
	return normalize(s.Role) == RoleHead
}

type AccessClaims struct {
	Session
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
