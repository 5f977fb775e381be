package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/service"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// Handler serves the plant catalog.
type Handler struct {
	catalog *service.Service
}

func New(catalog *service.Service) *Handler {
	return &Handler{catalog: catalog}
}

// Register attaches catalog routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.POST("/refresh", h.refresh)
}

func (h *Handler) get(c *gin.Context) {
	snap := h.catalog.Snapshot()

	resp := gin.H{
		"ok":         true,
		"plants":     snap.Plants,
		"loading":    snap.Loading,
		"categories": selection.Categories,
	}
	if !snap.LoadedAt.IsZero() {
		resp["loaded_at"] = snap.LoadedAt
	}
	if snap.Err != nil {
		resp["error"] = snap.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) refresh(c *gin.Context) {
	h.catalog.RefreshAsync()
	c.JSON(http.StatusAccepted, gin.H{"ok": true, "loading": true})
}
