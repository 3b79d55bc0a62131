package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// UserID extracts the authenticated user's ID from the Gin context.
// This is set by the auth middleware.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// Role extracts the authenticated user's role from the Gin context.
func Role(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserRole))
}

func IsAdmin(c *gin.Context) bool {
	return Role(c) == domain.RoleAdmin
}
