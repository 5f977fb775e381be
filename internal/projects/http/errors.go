package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/guide"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/service"
)

// writeError maps domain errors to status codes. Unexpected errors are logged and hidden.
func writeError(c *gin.Context, operation string, err error) {
	var (
		validation  *domain.ValidationError
		offline     *domain.OfflineError
		persistence *domain.PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		resp := gin.H{"ok": false, "error": validation.Message, "field": validation.Field}
		if validation.PlantID != "" {
			resp["plant_id"] = validation.PlantID
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
	case errors.As(err, &offline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": domain.ErrOffline.Error()})
	case errors.As(err, &persistence):
		logging.New(c.Request.Context()).LogError(operation, err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "could not save the project, your changes are kept"})
	case errors.Is(err, domain.ErrNoZones),
		errors.Is(err, domain.ErrProjectLocked),
		errors.Is(err, domain.ErrSaveInProgress),
		errors.Is(err, guide.ErrNotCompleted),
		errors.Is(err, guide.ErrNoPlants):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.New(c.Request.Context()).LogError(operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
