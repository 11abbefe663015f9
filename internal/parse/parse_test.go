package parse

import (
	"errors"
	"testing"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	Front string   `json:"front"`
	Tags  []string `json:"tags"`
}

func cardSchema() *llm.Schema {
	return &llm.Schema{
		Name: "parse-test-card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"front": map[string]any{"type": "string", "minLength": 1},
				"tags": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"front", "tags"},
		},
	}
}

func TestJSON_Valid(t *testing.T) {
	got, err := JSON[card]("card", `{"front":"What is 1/2?","tags":["fractions"]}`, cardSchema())
	require.NoError(t, err)
	assert.Equal(t, "What is 1/2?", got.Front)
	assert.Equal(t, []string{"fractions"}, got.Tags)
}

func TestJSON_SameNameDifferentDefinition(t *testing.T) {
	sized := func(n int) *llm.Schema {
		return &llm.Schema{
			Name: "parse-test-sized",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tags": map[string]any{"type": "array", "minItems": n, "maxItems": n},
				},
				"required": []any{"tags"},
			},
		}
	}

	_, err := JSON[card]("card", `{"tags":["a","b"]}`, sized(2))
	require.NoError(t, err)

	_, err = JSON[card]("card", `{"tags":["a","b","c"]}`, sized(3))
	require.NoError(t, err, "a differing definition under the same name must compile separately")

	_, err = JSON[card]("card", `{"tags":["a","b"]}`, sized(3))
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestJSON_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"front\":\"Q\",\"tags\":[]}\n```"
	got, err := JSON[card]("card", raw, cardSchema())
	require.NoError(t, err)
	assert.Equal(t, "Q", got.Front)
}

func TestJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"not json", "Here is your lesson!"},
		{"truncated", `{"front":"Q","tags":[`},
		{"missing required", `{"front":"Q"}`},
		{"wrong type", `{"front":7,"tags":[]}`},
		{"empty fence", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON[card]("card", tt.raw, cardSchema())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedOutput)

			var mal *MalformedOutputError
			require.True(t, errors.As(err, &mal))
			assert.Equal(t, "card", mal.Flow)
			assert.Equal(t, tt.raw, mal.Raw)
		})
	}
}

func TestJSON_ChecksRunInOrder(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	_, err := JSON[card]("card", `{"front":"Q","tags":[]}`, nil,
		func(card) error { return first },
		func(card) error { return second },
	)
	assert.ErrorIs(t, err, first)
	assert.NotErrorIs(t, err, second)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestJSON_WithoutSchemaStillDecodes(t *testing.T) {
	_, err := JSON[card]("card", `[1,2,3]`, nil)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestText(t *testing.T) {
	got, err := Text("reply", "Great question!")
	require.NoError(t, err)
	assert.Equal(t, "Great question!", got)

	_, err = Text("reply", " \t")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
