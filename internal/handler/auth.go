package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler interface {
	Me(c *gin.Context)
}

type authHandler struct{}

func NewAuthHandler() AuthHandler {
	return &authHandler{}
}

// Me handles GET /auth/me, echoing the verified identity so clients can
// test token validity.
func (h *authHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uid":     c.GetString("uid"),
		"email":   c.GetString("email"),
		"message": "Token valid",
	})
}
