// Package response writes the uniform JSON envelope used by every endpoint.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"rentit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the body of every successful response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// JSON writes a success envelope.
func JSON(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error converts err into an error envelope and aborts the chain. Internal
// errors are logged with their cause; the client only sees the message.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.Status()

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", appErr.Error(),
		)
	}

	details := appErr.Details
	if details == nil {
		details = []string{}
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		StatusCode: status,
		Data:       nil,
		Message:    appErr.Message,
		Success:    false,
		Errors:     details,
	})
}

// BindError turns a gin binding failure into a BadRequest with one detail
// per failed field.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
		Error(c, apperror.BadRequest("Invalid request data", details...))
		return
	}
	Error(c, apperror.BadRequest("Invalid request data", err.Error()))
}
