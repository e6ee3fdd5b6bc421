package models

import "github.com/golang-jwt/jwt/v5"

// Identity represents a verified caller as returned by the identity
// verification boundary. Email is empty when the identity has no
// contact address on record.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// Claims defines the structure of the JWT claims used by the local
// token verifier.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
