package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/docforge-backend/internal/platform/apierr"
)

// ErrorEnvelope is the body of every non-2xx JSON response:
//
//	{"error": {"message": "...", "code": "not_found"}}
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func envelope(code string, err error) ErrorEnvelope {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return ErrorEnvelope{Error: APIError{Message: msg, Code: code}}
}

func RespondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, envelope(code, err))
}

// RespondAPIError renders err with the status and code of its apierr kind.
// Unclassified errors become a 500 and their text stays in the request log.
func RespondAPIError(c *gin.Context, err error) {
	status, code, public := classify(c, err)
	c.JSON(status, envelope(code, public))
}

// AbortWithAPIError is RespondAPIError for middleware: later handlers do not run.
func AbortWithAPIError(c *gin.Context, err error) {
	status, code, public := classify(c, err)
	c.AbortWithStatusJSON(status, envelope(code, public))
}

func classify(c *gin.Context, err error) (int, string, error) {
	e := apierr.From(err)
	if e == nil {
		e = apierr.Internal(err)
	}
	if e.Status >= http.StatusInternalServerError {
		if err != nil {
			_ = c.Error(err)
		}
		return e.Status, e.Code, errors.New(http.StatusText(e.Status))
	}
	return e.Status, e.Code, e
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
