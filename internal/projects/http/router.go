package http

import "github.com/gin-gonic/gin"

// RegisterSessions attaches editing session routes to the given router group.
func (h *Handler) RegisterSessions(rg *gin.RouterGroup) {
	rg.POST("", h.openSession)
	rg.GET("/:id", h.getSession)
	rg.POST("/:id/actions", h.dispatch)
	rg.GET("/:id/plants", h.plants)
	rg.POST("/:id/save", h.save)
	rg.DELETE("/:id", h.closeSession)
}

// RegisterProjects attaches saved project routes to the given router group.
func (h *Handler) RegisterProjects(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/stream", h.stream)
	rg.GET("/:id", h.get)
	rg.GET("/:id/guide", h.guide)
}
