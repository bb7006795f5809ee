package models

import (
	"strings"

	"medmcp/pkg/validation"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"

// LoginRequest carries the username/password pair for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

// Normalize trims the username. The password is used verbatim.
func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Username = strings.TrimSpace(r.Username)
}

func (r *LoginRequest) Validate() error {
	return validation.Validate(r)
}

// TokenResult is the login response body.
type TokenResult struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// CurrentUser is returned by GET /auth/me.
type CurrentUser struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}
