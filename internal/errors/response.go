package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error body of the non-HTML endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // code from codes.go
	Message string `json:"message"` // user-facing message
}

func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "نشست نامعتبر است"
	}
	RespondWithError(c, http.StatusUnauthorized, SessionInvalid, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "خطای داخلی سرور، لطفاً دوباره تلاش کنید"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ParseAndRespond writes err as JSON using ParseError.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
