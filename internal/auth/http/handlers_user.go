package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/auth"
)

// GetProfile returns the identity the auth middleware attached to the request.
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": profile{
		UID:             uid,
		Email:           c.GetString(auth.CtxEmail),
		DisplayIdentity: auth.DisplayIdentity(c),
	}})
}
