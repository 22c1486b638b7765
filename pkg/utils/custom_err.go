package utils

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionBusy        = errors.New("session is busy")
	ErrInvalidStep        = errors.New("action not allowed in current step")
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrInvalidAnswerIndex = errors.New("invalid answer index")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenIssue         = errors.New("failed to issue session token")
)
