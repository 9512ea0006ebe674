package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/apperrors"
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

// RespondWithAppError maps a data-layer error kind onto an HTTP status.
func RespondWithAppError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindDuplicateEmail:
		status = http.StatusConflict
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInvalidCredentials:
		status = http.StatusUnauthorized
	case apperrors.KindUnavailable:
		status = http.StatusConflict
	}
	RespondWithError(c, status, err.Error())
}
