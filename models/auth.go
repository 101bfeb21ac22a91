package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "droboapp_session"

// SessionClaims represents the JWT claims of an admin session
type SessionClaims struct {
	App string `json:"app"`

	jwt.RegisteredClaims
}

// LoginRequest is the login form payload
type LoginRequest struct {
	Password string `form:"password" validate:"required,max=256"`
}
