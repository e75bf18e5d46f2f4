package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a session token
type SessionClaims struct {
	jwt.RegisteredClaims // sub = user id
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
