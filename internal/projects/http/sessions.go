package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

func (h *Handler) openSession(c *gin.Context) {
	var req openSessionReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid body")
		return
	}

	sess, err := h.sessions.Open(c.Request.Context(), strings.TrimSpace(req.ProjectID))
	if err != nil {
		writeError(c, "open_session", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": toSessionResp(sess.ID, sess.State())})
}

func (h *Handler) getSession(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, "get_session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": toSessionResp(sess.ID, sess.State())})
}

func (h *Handler) dispatch(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, "dispatch_action", err)
		return
	}

	var req actionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	action, err := req.toAction(h.sessions.Plant)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	st, err := sess.Dispatch(action)
	if err != nil {
		writeError(c, "dispatch_action", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": toSessionResp(sess.ID, st)})
}

func (h *Handler) plants(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, "session_plants", err)
		return
	}
	view := sess.State().View
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"plants":         h.sessions.View(sess),
		"view":           view,
		"filters_active": view.Active(),
	})
}

func (h *Handler) save(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, "save_project", err)
		return
	}

	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid body")
		return
	}
	var target domain.Status
	if req.Status != "" {
		s, ok := domain.ParseStatus(req.Status)
		if !ok {
			badRequest(c, "unknown status")
			return
		}
		target = s
	}

	p, err := h.sessions.Save(c.Request.Context(), sess, target)
	if err != nil {
		writeError(c, "save_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"project": p,
		"session": toSessionResp(sess.ID, sess.State()),
	})
}

func (h *Handler) closeSession(c *gin.Context) {
	if !h.sessions.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "editing session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
