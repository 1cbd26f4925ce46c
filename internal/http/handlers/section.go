package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docforge-backend/internal/http/response"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/services"
)

type SectionHandler struct {
	authoring services.AuthoringService
}

func NewSectionHandler(authoring services.AuthoringService) *SectionHandler {
	return &SectionHandler{authoring: authoring}
}

// PUT /api/sections/:id/content
// body: { "content": "..." }
func (h *SectionHandler) UpdateContent(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := pathID(c, "section")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	if req.Content == nil {
		response.RespondAPIError(c, apierr.Validation("content is required"))
		return
	}
	ctx := c.Request.Context()
	if _, _, err := h.authoring.GetOwnedSection(ctx, sectionID, owner); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	section, err := h.authoring.UpdateSectionContent(ctx, sectionID, *req.Content)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"section": section})
}

// GET /api/sections/:id/refinements
func (h *SectionHandler) ListRefinements(c *gin.Context) {
	owner, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := pathID(c, "section")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	refs, err := h.authoring.ListRefinements(c.Request.Context(), sectionID, owner)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"refinements": refs})
}

// POST /api/sections/:id/feedback
// body: { "feedback_type": "like" | "dislike" }
func (h *SectionHandler) AddFeedback(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := pathID(c, "section")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		FeedbackType string `json:"feedback_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	fb, err := h.authoring.AddFeedback(c.Request.Context(), sectionID, user, req.FeedbackType)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"feedback": fb})
}

// POST /api/sections/:id/comments
// body: { "comment_text": "..." }
func (h *SectionHandler) AddComment(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := pathID(c, "section")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Text string `json:"comment_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	comment, err := h.authoring.AddComment(c.Request.Context(), sectionID, user, req.Text)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"comment": comment})
}

// GET /api/sections/:id/comments
func (h *SectionHandler) ListComments(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	sectionID, err := pathID(c, "section")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	comments, err := h.authoring.ListComments(c.Request.Context(), sectionID, user)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comments": comments})
}

// PUT /api/comments/:id
func (h *SectionHandler) UpdateComment(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	commentID, err := pathID(c, "comment")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Text string `json:"comment_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	comment, err := h.authoring.UpdateComment(c.Request.Context(), commentID, user, req.Text)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comment": comment})
}

// DELETE /api/comments/:id
func (h *SectionHandler) DeleteComment(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	commentID, err := pathID(c, "comment")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.authoring.DeleteComment(c.Request.Context(), commentID, user); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}
