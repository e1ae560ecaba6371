package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the JSON envelope for every endpoint. Success bodies put
// their payload under Data ({"data":{"book":...}}); failures put a list of
// {field, message} objects under Errors.
type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      T           `json:"data,omitempty"`
	Errors    []ErrorItem `json:"errors,omitempty"`
}

// ErrorItem is one reported failure. Field is empty for non-field errors
// (auth failures, storage failures).
type ErrorItem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Success writes a success envelope with the given payload.
func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	})
}

// Error writes a failure envelope with a single message.
func Error(c *gin.Context, status int, message string) {
	Fail(c, status, ErrorItem{Message: message})
}

// Fail writes a failure envelope carrying every reported error.
func Fail(c *gin.Context, status int, errs ...ErrorItem) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Errors:    errs,
	})
}
