package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/parse"
)

// Purpose is the event-log label for quiz generation calls.
const Purpose = "quiz"

// Generator produces exam quizzes from an LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
	schema   *llm.Schema
}

// NewGenerator creates a quiz generator. A non-positive Size falls back to
// the default.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	return &Generator{provider: provider, cfg: cfg, schema: buildSchema(cfg.Size)}
}

// Size returns the number of items every quiz contains.
func (g *Generator) Size() int { return g.cfg.Size }

// Generate returns exactly Size validated items for topic and exam.
func (g *Generator) Generate(ctx context.Context, topic, exam string) ([]Item, error) {
	topic, exam = strings.TrimSpace(topic), strings.TrimSpace(exam)
	if topic == "" {
		return nil, ErrTopicRequired
	}
	if exam == "" {
		return nil, ErrExamRequired
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, exam, g.cfg.Size)},
		},
		Schema:      g.schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	out, err := parse.JSON[quizOutput](Purpose, wrapBareArray(resp.Text), g.schema, checkItems(g.cfg.Size))
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// wrapBareArray accepts the older reply shape, a top-level JSON array of
// items, by wrapping it as {"questions": [...]}.
func wrapBareArray(raw string) string {
	body := parse.StripFences(raw)
	if !strings.HasPrefix(body, "[") || !json.Valid([]byte(body)) {
		return raw
	}
	return `{"questions":` + body + `}`
}
