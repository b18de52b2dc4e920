package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
