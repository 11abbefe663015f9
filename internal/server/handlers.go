package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/quiz"
	"github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/tutor"
)

// Tutor is the session orchestrator as seen by the HTTP layer.
type Tutor interface {
	Start(ctx context.Context, topic, level string) (*tutor.StartResult, error)
	Turn(ctx context.Context, sessionID string, in tutor.TurnInput) (*tutor.TurnResult, error)
	Summary(ctx context.Context, sessionID string) (*session.Summary, error)
}

// QuizGenerator produces stand-alone exam quizzes.
type QuizGenerator interface {
	Generate(ctx context.Context, topic, exam string) ([]quiz.Item, error)
}

type handlers struct {
	tutor Tutor
	quiz  QuizGenerator
	now   func() time.Time
}

type generateContentRequest struct {
	Topic        string `json:"topic"`
	StudentLevel string `json:"studentLevel"`
}

type generateContentResponse struct {
	SessionID string          `json:"sessionId"`
	Content   lessons.Content `json:"content"`
}

type dialogueRequest struct {
	SessionID  string `json:"sessionId"`
	Message    string `json:"message"`
	QuizAnswer string `json:"quizAnswer"`
}

type dialogueSession struct {
	Topic     string `json:"topic"`
	Progress  int    `json:"progress"`
	Responses int    `json:"responses"`
}

type dialogueResponse struct {
	Response string          `json:"response"`
	Session  dialogueSession `json:"session"`
}

type quizRequest struct {
	Topic string `json:"topic"`
	Exam  string `json:"exam"`
}

type quizResponse struct {
	Questions []quiz.Item `json:"questions"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (h *handlers) GenerateContent(c *gin.Context) {
	var req generateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.tutor.Start(c.Request.Context(), req.Topic, req.StudentLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateContentResponse{SessionID: res.SessionID, Content: res.Content})
}

func (h *handlers) Dialogue(c *gin.Context) {
	var req dialogueRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.tutor.Turn(c.Request.Context(), req.SessionID, tutor.TurnInput{
		Message:    req.Message,
		QuizAnswer: req.QuizAnswer,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dialogueResponse{
		Response: res.Reply,
		Session: dialogueSession{
			Topic:     res.Summary.Topic,
			Progress:  res.Summary.Progress,
			Responses: res.Summary.ResponseCount,
		},
	})
}

func (h *handlers) Session(c *gin.Context) {
	sum, err := h.tutor.Summary(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *handlers) Quiz(c *gin.Context) {
	var req quizRequest
	if !bindJSON(c, &req) {
		return
	}

	items, err := h.quiz.Generate(c.Request.Context(), req.Topic, req.Exam)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizResponse{Questions: items})
}

func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// bindJSON decodes the body into dst, writing a 400 or 413 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	_ = c.Error(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondStatus(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "Request body too large")
		return false
	}
	respondStatus(c, http.StatusBadRequest, CodeInvalidBody, "Invalid request body")
	return false
}
