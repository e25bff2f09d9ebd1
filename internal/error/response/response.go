package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sk-barangay-service/internal/error/code"
	Logger "sk-barangay-service/pkg/logger"
)

// envelope builds {success, message?, ...fields}
func envelope(success bool, message string, fields gin.H) gin.H {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

// Success responds 200 with the given message and payload fields
func Success(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusOK, envelope(true, message, fields))
}

// Created responds 201 with the given message and payload fields
func Created(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusCreated, envelope(true, message, fields))
}

// Fail responds with the default message and status of errorCode
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage responds with the status of errorCode and a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), envelope(false, message, gin.H{"code": errorCode}))
}

// ParamError responds 400 with message
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}

// NotFound responds 404 with message
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrNotFound)
	}
	FailWithMessage(c, code.ErrNotFound, message)
}

// Unauthorized responds 401 with message
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrTokenInvalid)
	}
	FailWithMessage(c, code.ErrTokenInvalid, message)
}

// ServerError responds 500 with message
func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrUnknown)
	}
	FailWithMessage(c, code.ErrUnknown, message)
}

// Error renders err. Client errors keep their message, anything else is
// logged and answered with fallback.
func Error(c *gin.Context, err error, fallback string) {
	if e, ok := code.As(err); ok {
		FailWithMessage(c, e.Code, e.Message)
		return
	}
	Logger.Error("%s %s: %s: %v", c.Request.Method, c.FullPath(), fallback, err)
	ServerError(c, fallback)
}
