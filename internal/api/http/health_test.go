package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/service"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedCatalog catalog.Snapshot

func (f fixedCatalog) Snapshot() catalog.Snapshot { return catalog.Snapshot(f) }

func check(t *testing.T, h *HealthHandler, path string) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthReportsDependencies(t *testing.T) {
	h := NewHealthHandler("structurecare", "1.2.3",
		pingerFunc(func(context.Context) error { return nil }),
		fixedCatalog{LoadedAt: time.Now()},
	)

	resp := check(t, h, "/health")
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "structurecare", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "up", resp.Store)
	assert.Equal(t, "ready", resp.Catalog)
}

func TestHealthStoreDown(t *testing.T) {
	h := NewHealthHandler("structurecare", "dev",
		pingerFunc(func(context.Context) error { return errors.New("refused") }),
		fixedCatalog{Err: errors.New("429")},
	)

	resp := check(t, h, "/healthz")
	assert.Equal(t, "down", resp.Store)
	assert.Equal(t, "unavailable", resp.Catalog)
}

func TestHealthWithoutDependencies(t *testing.T) {
	resp := check(t, NewHealthHandler("structurecare", "dev", nil, nil), "/health")
	assert.Equal(t, "disabled", resp.Store)
	assert.Empty(t, resp.Catalog)
}
