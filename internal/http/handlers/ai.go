package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docforge-backend/internal/http/response"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/services"
)

const defaultOutlineSections = 5

type AIHandler struct {
	workflow services.WorkflowService
}

func NewAIHandler(workflow services.WorkflowService) *AIHandler {
	return &AIHandler{workflow: workflow}
}

// POST /api/ai/generate-outline
// body: { "topic": "...", "document_type": "docx", "num_sections": 5 }
func (h *AIHandler) GenerateOutline(c *gin.Context) {
	var req struct {
		Topic        string `json:"topic"`
		DocumentType string `json:"document_type"`
		NumSections  *int   `json:"num_sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	n := defaultOutlineSections
	if req.NumSections != nil {
		n = *req.NumSections
	}
	titles, err := h.workflow.GenerateOutline(c.Request.Context(), req.Topic, req.DocumentType, n)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"titles": titles})
}

// POST /api/ai/generate-section-content
// body: { "project_id": "...", "section_id": "...", "additional_context": "..." }
func (h *AIHandler) GenerateSectionContent(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		ProjectID         string `json:"project_id"`
		SectionID         string `json:"section_id"`
		AdditionalContext string `json:"additional_context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	projectID, err := parseBodyID(req.ProjectID, "project_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := parseBodyID(req.SectionID, "section_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	section, err := h.workflow.GenerateSectionContent(c.Request.Context(), owner, projectID, sectionID, req.AdditionalContext)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"content": section.ContentText(), "section": section})
}

// POST /api/ai/generate-all
// body: { "project_id": "...", "only_missing": true }
func (h *AIHandler) GenerateAll(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		ProjectID   string `json:"project_id"`
		OnlyMissing bool   `json:"only_missing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	projectID, err := parseBodyID(req.ProjectID, "project_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	project, err := h.workflow.GenerateAllSections(c.Request.Context(), owner, projectID, req.OnlyMissing)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

// POST /api/ai/refine-content
// body: { "section_id": "...", "refinement_instruction": "..." }
func (h *AIHandler) RefineContent(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		SectionID   string `json:"section_id"`
		Instruction string `json:"refinement_instruction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	sectionID, err := parseBodyID(req.SectionID, "section_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	ref, err := h.workflow.RefineSection(c.Request.Context(), owner, sectionID, req.Instruction)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"refined_content": ref.Result, "refinement": ref})
}
