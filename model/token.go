package model

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is what the bearer token carries. The role is the one
// resolved at issue time; decision guards re-check bindings and never
// trust it.
type TokenClaims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	UnitID   *uint  `json:"unit_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
