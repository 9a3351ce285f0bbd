package http

import "github.com/gin-gonic/gin"

// RegisterProjects attaches project routes to the given router group.
func (h *Handler) RegisterProjects(rg *gin.RouterGroup) {
	rg.GET("", h.listProjects)
	rg.GET("/all", h.listAllProjects)
	rg.GET("/:projectId", h.getProject)
	rg.POST("", h.createProject)
	rg.PUT("/:projectId", h.updateProject)
	rg.DELETE("/:projectId", h.deleteProject)
}

// RegisterTasks attaches task routes. List endpoints accept ?projectId.
func (h *Handler) RegisterTasks(rg *gin.RouterGroup) {
	rg.GET("", h.listTasks)
	rg.GET("/all", h.listAllTasks)
	rg.GET("/:taskId", h.getTask)
	rg.POST("", h.createTask)
	rg.PUT("/:taskId", h.updateTask)
	rg.DELETE("/:taskId", h.deleteTask)
}
