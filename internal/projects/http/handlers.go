package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/guide"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/metrics"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

// statusParam reads ?status=, defaulting to In Progress.
func statusParam(c *gin.Context) (domain.Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return domain.StatusInProgress, true
	}
	return domain.ParseStatus(raw)
}

func (h *Handler) list(c *gin.Context) {
	status, ok := statusParam(c)
	if !ok {
		badRequest(c, "unknown status")
		return
	}

	items, err := h.projects.List(c.Request.Context(), status)
	if err != nil {
		writeError(c, "list_projects", err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	out := make([]domain.Project, 0, len(items))
	for _, p := range items {
		if p.Matches(q) {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": out})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "get_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) guide(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.projects.Get(ctx, id)
	if err != nil {
		writeError(c, "render_guide", err)
		return
	}
	html, err := guide.Render(p, h.business)
	if err != nil {
		writeError(c, "render_guide", err)
		return
	}

	archived := false
	if h.archive != nil {
		loc, err := h.archive.Put(ctx, id, html)
		if err != nil {
			logging.New(ctx).LogWarnf("archive_guide", "project_id=%s error=%v", id, err)
		} else {
			archived = true
			c.Header("X-Guide-Location", loc)
		}
	}
	metrics.GuidesRendered.WithLabelValues(strconv.FormatBool(archived)).Inc()

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
