package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	"github.com/taskmgmt/task-management-api/internal/auth"
	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/dto"
)

func (h *Handler) listTasks(c *gin.Context) {
	page, err := pagination.ParseQuery(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	out, err := h.tasks.ListPage(c.Request.Context(), auth.UserSubject(c), strings.TrimSpace(c.Query("projectId")), page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromTaskPage(out))
}

func (h *Handler) listAllTasks(c *gin.Context) {
	out, err := h.tasks.ListAll(c.Request.Context(), auth.UserSubject(c), strings.TrimSpace(c.Query("projectId")))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromTasks(out))
}

func (h *Handler) getTask(c *gin.Context) {
	t, err := h.tasks.Get(c.Request.Context(), auth.UserSubject(c), c.Param("taskId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromTask(*t))
}

func (h *Handler) createTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), auth.UserSubject(c), req.ProjectID, dto.ToTask(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, dto.FromTask(*t))
}

// updateTask ignores projectId; tasks do not move between projects.
func (h *Handler) updateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	t, err := h.tasks.Update(c.Request.Context(), auth.UserSubject(c), c.Param("taskId"), dto.ToTask(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, dto.FromTask(*t))
}

func (h *Handler) deleteTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if err := h.tasks.Delete(c.Request.Context(), auth.UserSubject(c), taskID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, "Task "+taskID+" deleted successfully")
}
