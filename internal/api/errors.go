package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/pkg/logging"
)

// errorResponse is the JSON error body
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusForCode(code string) int {
	switch code {
	case models.CodeValidation:
		return http.StatusBadRequest
	case models.CodeAuthentication:
		return http.StatusUnauthorized
	case models.CodeAuthorization:
		return http.StatusForbidden
	case models.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps an application error to its HTTP status and writes the
// JSON error body. Internal failures are logged, not exposed.
func respondError(c *gin.Context, err error) {
	code := models.ErrorCode(err)
	status := statusForCode(code)

	message := err.Error()
	if code == models.CodeInternal {
		logging.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: message, Code: code})
}
