package response

import (
	"errors"
	"net/http"

	"courtside/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errs interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errs,
	})
}

// RespondError maps a service error onto the standard envelope using the
// apperrors taxonomy. Untyped errors become opaque 500s so internals never
// leak to clients.
func RespondError(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		var details interface{}
		if len(appErr.Fields) > 0 {
			details = gin.H{"fields": appErr.Fields}
		}
		RespondJSON(c, "error", code, appErr.Message, nil, details)
		return
	}

	RespondJSON(c, "error", http.StatusInternalServerError, "internal server error", nil, nil)
}
