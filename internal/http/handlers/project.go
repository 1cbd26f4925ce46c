package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docforge-backend/internal/http/response"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/services"
)

type ProjectHandler struct {
	authoring services.AuthoringService
}

func NewProjectHandler(authoring services.AuthoringService) *ProjectHandler {
	return &ProjectHandler{authoring: authoring}
}

// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req services.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	project, err := h.authoring.CreateProject(c.Request.Context(), owner, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"project": project})
}

// GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	projects, err := h.authoring.ListProjects(c.Request.Context(), owner)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}

// GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	projectID, err := pathID(c, "project")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	project, err := h.authoring.GetProject(c.Request.Context(), projectID, owner)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	projectID, err := pathID(c, "project")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.authoring.DeleteProject(c.Request.Context(), projectID, owner); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Project deleted successfully"})
}

// PATCH /api/projects/:id/status
// body: { "status": "draft" | "generating" | "completed" }
func (h *ProjectHandler) SetStatus(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	projectID, err := pathID(c, "project")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	project, err := h.authoring.SetProjectStatus(c.Request.Context(), projectID, owner, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// POST /api/projects/:id/sections
func (h *ProjectHandler) AddSection(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	projectID, err := pathID(c, "project")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req services.SectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	section, err := h.authoring.AddSection(c.Request.Context(), projectID, owner, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"section": section})
}
