package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/parse"
	"github.com/abhisek/tutor/internal/quiz"
	"github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/tutor"
)

// Error codes returned in the "code" field of every error body.
const (
	CodeInvalidBody     = "invalid_body"
	CodeBodyTooLarge    = "body_too_large"
	CodeTopicRequired   = "topic_required"
	CodeExamRequired    = "exam_required"
	CodeInvalidLevel    = "invalid_level"
	CodeEmptyTurn       = "empty_turn"
	CodeSessionNotFound = "session_not_found"
	CodeRateLimited     = "rate_limited"
	CodeMalformed       = "malformed_output"
	CodeNetwork         = "network_error"
	CodeAuth            = "auth_error"
	CodeUpstreamLimited = "upstream_rate_limited"
	CodeTimeout         = "timeout"
	CodeGeneration      = "generation_failed"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type apiError struct {
	status  int
	code    string
	message string
}

// classify maps a service error to its HTTP status, code and client message.
func classify(err error) apiError {
	switch {
	case errors.Is(err, tutor.ErrTopicRequired), errors.Is(err, quiz.ErrTopicRequired):
		return apiError{http.StatusBadRequest, CodeTopicRequired, "Topic is required"}
	case errors.Is(err, quiz.ErrExamRequired):
		return apiError{http.StatusBadRequest, CodeExamRequired, "Exam is required"}
	case errors.Is(err, lessons.ErrInvalidLevel):
		return apiError{http.StatusBadRequest, CodeInvalidLevel, "studentLevel must be one of beginner, intermediate, advanced"}
	case errors.Is(err, tutor.ErrEmptyTurn):
		return apiError{http.StatusBadRequest, CodeEmptyTurn, "message or quizAnswer is required"}
	case errors.Is(err, session.ErrNotFound):
		return apiError{http.StatusNotFound, CodeSessionNotFound, "Session not found"}
	case errors.Is(err, parse.ErrMalformedOutput):
		return apiError{http.StatusInternalServerError, CodeMalformed, "The model returned malformed content - please try again"}
	}

	switch llm.Classify(err) {
	case llm.KindNetwork:
		return apiError{http.StatusInternalServerError, CodeNetwork, "Network error - please check your internet connection"}
	case llm.KindAuth:
		return apiError{http.StatusInternalServerError, CodeAuth, "Invalid API key - please check your configuration"}
	case llm.KindRateLimit:
		return apiError{http.StatusInternalServerError, CodeUpstreamLimited, "Rate limit exceeded - please try again in a moment"}
	case llm.KindTimeout:
		return apiError{http.StatusInternalServerError, CodeTimeout, "Request timed out - please try again"}
	default:
		return apiError{http.StatusInternalServerError, CodeGeneration, "Failed to generate content: " + err.Error()}
	}
}

// respondError writes the classified error and attaches err to the gin
// context for the access log.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	e := classify(err)
	c.AbortWithStatusJSON(e.status, errorBody{Error: e.message, Code: e.code})
}

func respondStatus(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: message, Code: code})
}
