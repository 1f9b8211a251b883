package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the JWT claims embedded in a login token
type TokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
