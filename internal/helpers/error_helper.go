package helpers

import (
	"errors"
	"net/http"

	"github.com/confawards/confawards/internal/status"
	"github.com/confawards/confawards/internal/workflow"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithDomainError maps the workflow error taxonomy onto HTTP
// status codes. Anything outside the taxonomy is a storage failure and
// reported as a 500 without leaking details.
func RespondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, workflow.ErrInvalidState), errors.Is(err, status.ErrInvalidTransition):
		RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, workflow.ErrSoldOut):
		RespondWithError(c, http.StatusConflict, "No seats available for this event.")
	case errors.Is(err, workflow.ErrDuplicateRegistration):
		RespondWithError(c, http.StatusConflict, "Already registered for this event.")
	case errors.Is(err, workflow.ErrUnauthorized):
		RespondWithError(c, http.StatusForbidden, "You don't have permission to do that.")
	case errors.Is(err, workflow.ErrConcurrencyConflict):
		RespondWithError(c, http.StatusConflict, "Operation conflicted with a concurrent change. Please retry.")
	default:
		RespondWithError(c, http.StatusInternalServerError, "Storage failure. Please try again later.")
	}
}
