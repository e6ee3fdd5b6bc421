package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/internal/identity_client"
	"backend/internal/models"
)

// TokenVerifier turns a bearer credential into a verified identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware creates a Gin middleware that verifies the bearer
// token on every request before any dispatch logic runs. The verified
// identity is stored in the request context under "uid" and "email".
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		ident, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, identity_client.ErrTokenRejected) {
				logger.Error("Token verification failed", zap.Error(err))
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("uid", ident.UID)
		c.Set("email", ident.Email)

		c.Next()
	}
}

// IdentityFromContext rebuilds the verified identity stored by
// AuthMiddleware.
func IdentityFromContext(c *gin.Context) models.Identity {
	return models.Identity{
		UID:   c.GetString("uid"),
		Email: c.GetString("email"),
	}
}
