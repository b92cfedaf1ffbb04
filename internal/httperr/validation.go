package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationResponse membawa error per field ke klien (HTTP 422).
type ValidationResponse struct {
	Code   string            `json:"error_code"`
	Fields map[string]string `json:"fields"`
}

func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
		Code:   "validation_failed",
		Fields: fields,
	})
}
