package middleware

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"backend/internal/identity_client"
	"backend/internal/models"
)

// LocalVerifier verifies HS256-signed JWTs in-process. It is used when
// no external identity service is configured.
type LocalVerifier struct {
	secret []byte
}

// NewLocalVerifier creates a LocalVerifier with the given signing secret.
func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

// VerifyToken parses and validates the token, returning the identity
// carried in its claims. Rejections are reported as ErrTokenRejected so
// callers treat both verification modes uniformly.
func (v *LocalVerifier) VerifyToken(_ context.Context, tokenString string) (*models.Identity, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity_client.ErrTokenRejected, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, identity_client.ErrTokenRejected
	}

	return &models.Identity{UID: claims.Subject, Email: claims.Email}, nil
}
