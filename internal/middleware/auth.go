package middleware

import (
	"net/http"
	"strings"

	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key holding the authenticated user.
const CurrentUserKey = "currentUser"

// AuthMiddleware verifies the bearer session token, loads the user and
// stores it in the context. Inactive accounts are refused here so no
// protected handler needs its own check.
func AuthMiddleware(identity *service.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "missing authorization header")
			c.Abort()
			return
		}

		email, err := identity.VerifySessionToken(tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token, please log in again")
			c.Abort()
			return
		}

		user, err := identity.ResolveUser(c.Request.Context(), email)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token, please log in again")
			c.Abort()
			return
		}
		if !user.IsActive {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "account is inactive")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
