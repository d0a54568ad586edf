package api

import (
	"crypto/subtle"
	"errors"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextSessionKey holds the caller's domain.Session.
const ContextSessionKey = "session"

// HookSecretHeader carries the shared secret of the provisioning hook.
const HookSecretHeader = "X-Hook-Secret"

// AuthMiddleware verifies the bearer token and stores the session in the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		sess, err := authService.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// InstructorMiddleware rejects callers whose account is not an instructor account.
// Must run AFTER AuthMiddleware.
func InstructorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := getSession(c)
		if !sess.Authenticated() {
			abortWithError(c, http.StatusUnauthorized, service.ErrAuthRequired.Error())
			return
		}
		if !sess.IsInstructor() {
			abortWithError(c, http.StatusForbidden, service.ErrInstructorOnly.Error())
			return
		}
		c.Next()
	}
}

// HookSecretMiddleware guards the provisioning hook. An empty secret disables it.
func HookSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abortWithError(c, http.StatusServiceUnavailable, "Account hook is disabled")
			return
		}
		got := c.GetHeader(HookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			abortWithError(c, http.StatusUnauthorized, "Invalid hook secret")
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getSession returns the session set by AuthMiddleware, or an empty session.
func getSession(c *gin.Context) domain.Session {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return domain.Session{}
	}
	sess, _ := raw.(domain.Session)
	return sess
}
