package model

import "github.com/golang-jwt/jwt/v5"

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // expiration in seconds
}

type AccessClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthUser is the authenticated caller as seen by the services layer.
type AuthUser struct {
	ID   string
	Name string
	Role string
}

func (c *AccessClaims) AuthUser() AuthUser {
	return AuthUser{ID: c.UserID, Name: c.Name, Role: c.Role}
}
