package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Code is an application result code carried in every response body.
type Code int

const (
	CodeSuccess          Code = 20000
	CodeParamInvalid     Code = 40001
	CodeValidationFailed Code = 40002
	CodeInternalServer   Code = 50000
)

var messages = map[Code]string{
	CodeSuccess:          "success",
	CodeParamInvalid:     "invalid request parameters",
	CodeValidationFailed: "request validation failed",
	CodeInternalServer:   "internal server error",
}

// Message returns the default message for code.
func (c Code) Message() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return "unknown"
}

// Status maps code to its HTTP status.
func (c Code) Status() int {
	switch {
	case c == CodeSuccess:
		return http.StatusOK
	case c >= 40000 && c < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON envelope of every response.
type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse writes data with the status of code.
func SuccessResponse(c *gin.Context, code Code, data any) {
	c.JSON(code.Status(), Body{
		Code:    code,
		Message: code.Message(),
		Data:    data,
	})
}

// ErrorResponse aborts the request and writes err with the status of code.
func ErrorResponse(c *gin.Context, code Code, err error) {
	body := Body{
		Code:    code,
		Message: code.Message(),
	}
	if err != nil {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(code.Status(), body)
}
