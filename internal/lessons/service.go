package lessons

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/parse"
)

// Purpose labels for the LLM event log.
const (
	PurposeContent = "lesson-content"
	PurposeReply   = "tutor-reply"
)

// Service generates content bundles and tutor replies.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// GenerateContent asks the model for a content bundle and validates it.
// Provider failures are returned wrapped; malformed output is returned as a
// *parse.MalformedOutputError.
func (s *Service) GenerateContent(ctx context.Context, topic string, level Level) (*Content, error) {
	ctx = llm.WithPurpose(ctx, PurposeContent)

	req := llm.Request{
		System: contentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildContentUserMessage(strings.TrimSpace(topic), level)},
		},
		Schema:      ContentSchema,
		MaxTokens:   s.cfg.ContentMaxTokens,
		Temperature: s.cfg.ContentTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	content, err := parse.JSON[Content](PurposeContent, resp.Text, ContentSchema, checkContent)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Reply asks the model for a prose answer to one student turn.
func (s *Service) Reply(ctx context.Context, in ReplyInput) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeReply)

	req := llm.Request{
		System:      tutorSystemPrompt,
		Messages:    buildTurnMessages(in, s.cfg.MaxHistoryTurns),
		MaxTokens:   s.cfg.ReplyMaxTokens,
		Temperature: s.cfg.ReplyTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	return parse.Text(PurposeReply, resp.Text)
}
