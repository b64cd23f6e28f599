package models

import "github.com/golang-jwt/jwt/v5"

// Roles recognized by the authorization middleware.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type JwtCustomClaims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
