package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/logging"
)

const keepAliveInterval = 15 * time.Second

// stream pushes the project list for ?status= over Server-Sent Events, once on connect and
// again after every change.
func (h *Handler) stream(c *gin.Context) {
	status, ok := statusParam(c)
	if !ok {
		badRequest(c, "unknown status")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	updates, err := h.projects.Subscribe(ctx, status)
	if err != nil {
		writeError(c, "stream_projects", err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	event := "initial"
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case items, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(gin.H{"status": status, "projects": items})
			if err != nil {
				logging.New(ctx).LogError("stream_projects", err)
				return
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
			flusher.Flush()
			event = "update"
		}
	}
}
