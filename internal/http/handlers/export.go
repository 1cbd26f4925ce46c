package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docforge-backend/internal/http/response"
	"github.com/yungbote/docforge-backend/internal/services"
)

type ExportHandler struct {
	exports services.ExportService
}

func NewExportHandler(exports services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// GET /api/export/:id
func (h *ExportHandler) ExportProject(c *gin.Context) {
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
	doc, err := h.exports.ExportProject(c.Request.Context(), projectID, owner)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, doc.Size, doc.MIMEType, doc.Reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%s", strconv.Quote(doc.Filename)),
	})
}
