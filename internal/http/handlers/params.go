package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/ctxutil"
)

// pathID parses the :id route parameter. A malformed id reads as a missing resource.
func pathID(c *gin.Context, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierr.NotFound(resource)
	}
	return id, nil
}

func parseBodyID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.Validation("%s must be a uuid", field)
	}
	return id, nil
}

func currentUser(c *gin.Context) (uuid.UUID, error) {
	id := ctxutil.UserID(c.Request.Context())
	if id == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized("unauthorized")
	}
	return id, nil
}
