package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	"github.com/taskmgmt/task-management-api/internal/auth"
	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/dto"
)

func (h *Handler) listProjects(c *gin.Context) {
	page, err := pagination.ParseQuery(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	out, err := h.projects.ListPage(c.Request.Context(), auth.UserSubject(c), page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromProjectPage(out))
}

func (h *Handler) listAllProjects(c *gin.Context) {
	out, err := h.projects.ListAll(c.Request.Context(), auth.UserSubject(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromProjects(out))
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), auth.UserSubject(c), c.Param("projectId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromProject(*p))
}

func (h *Handler) createProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	p, err := h.projects.Create(c.Request.Context(), auth.UserSubject(c), dto.ToProject(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, dto.FromProject(*p))
}

func (h *Handler) updateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	p, err := h.projects.Update(c.Request.Context(), auth.UserSubject(c), c.Param("projectId"), dto.ToProject(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromProject(*p))
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), auth.UserSubject(c), c.Param("projectId")); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, "Project deleted successfully")
}
