package middleware

import (
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/repository"
)

// Authenticate resolves the caller to a profile and stores (id, role) in the
// Gin context. With a Firebase client it verifies bearer ID tokens; without
// one (development) it trusts the X-User-Id header.
func Authenticate(authClient *firebaseauth.Client, profiles *repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uid, name string

		if authClient != nil {
			token := extractToken(c)
			if token == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
				c.Abort()
				return
			}

			decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				c.Abort()
				return
			}

			uid = decoded.UID
			if n, ok := decoded.Claims["name"].(string); ok {
				name = n
			} else if email, ok := decoded.Claims["email"].(string); ok {
				name = email
			}
		} else {
			// Dev mode: no Firebase configured
			uid = strings.TrimSpace(c.GetHeader("X-User-Id"))
			if uid == "" {
				uid = "demo-user"
			}
			name = c.GetHeader("X-User-Name")
		}

		profile, err := profiles.Ensure(c.Request.Context(), uid, name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ensure profile: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, profile.ID)
		c.Set(auth.CtxUserRole, profile.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose profile role is not admin.
// Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Role(c) != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
