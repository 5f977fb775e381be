package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/auth"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
)

// RequireIdentity rejects requests without an authenticated identity and stores the
// identity in the Gin context for downstream handlers.
func RequireIdentity(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := provider.Identify(c.Request.Context(), extractToken(c))
		if err != nil || !id.Authenticated {
			status := http.StatusUnauthorized
			msg := "invalid token"
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				msg = "missing authorization token"
			case errors.Is(err, auth.ErrDomainNotAllowed):
				status = http.StatusForbidden
				msg = err.Error()
			}
			if err != nil && !errors.Is(err, auth.ErrMissingToken) {
				logging.New(c.Request.Context()).LogWarnf("authenticate", "status=%d error=%v", status, err)
			}
			c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
			return
		}

		c.Set(auth.CtxFirebaseUID, id.UID)
		c.Set(auth.CtxEmail, id.Email)
		c.Set(auth.CtxDisplayIdentity, id.DisplayIdentity)
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
