package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"adwiz/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found or expired")
	case errors.Is(err, ErrSessionBusy):
		RespondError(c, http.StatusConflict, "A generation is already in progress")
	case errors.Is(err, ErrInvalidStep):
		RespondError(c, http.StatusBadRequest, "Action not allowed in the current step")
	case errors.Is(err, ErrEmptyPrompt):
		RespondError(c, http.StatusBadRequest, "Prompt must not be empty")
	case errors.Is(err, ErrInvalidAnswerIndex):
		RespondError(c, http.StatusBadRequest, "Answer index does not match a question")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid or expired session token")
	default:
		logger.WithContext(c.Request.Context()).WithError(err).Error("unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
