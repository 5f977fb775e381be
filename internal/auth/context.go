package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the auth middleware.
const (
	CtxFirebaseUID     = "firebase_uid"
	CtxEmail           = "email"
	CtxDisplayIdentity = "display_identity"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// DisplayIdentity is the name shown for the signed-in operator.
func DisplayIdentity(c *gin.Context) string {
	return c.GetString(CtxDisplayIdentity)
}
