package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/service"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Store     string    `json:"store,omitempty"`
	Catalog   string    `json:"catalog,omitempty"`
	Plants    int       `json:"plants"`
}

// Pinger is any dependency that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CatalogStatus exposes the current catalog snapshot.
type CatalogStatus interface {
	Snapshot() catalog.Snapshot
}

type HealthHandler struct {
	serviceName string
	version     string
	store       Pinger
	catalog     CatalogStatus
}

func NewHealthHandler(serviceName, version string, store Pinger, catalog CatalogStatus) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		catalog:     catalog,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Store:     "disabled",
	}

	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			resp.Store = "down"
		} else {
			resp.Store = "up"
		}
	}

	if h.catalog != nil {
		snap := h.catalog.Snapshot()
		resp.Plants = len(snap.Plants)
		switch {
		case snap.Loading:
			resp.Catalog = "loading"
		case snap.Err != nil:
			resp.Catalog = "unavailable"
		case snap.LoadedAt.IsZero():
			resp.Catalog = "pending"
		default:
			resp.Catalog = "ready"
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
