package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/parse"
)

func testItem(i int) Item {
	return Item{
		Question:      fmt.Sprintf("Question %d: what is the SI unit of force?", i),
		Choices:       []string{"Joule", "Newton", "Watt", "Pascal"},
		CorrectAnswer: 1,
		Explanation:   "Force is measured in newtons.",
		Source:        "NEET 2021",
	}
}

func itemsJSON(t *testing.T, n int, edit func([]Item)) string {
	t.Helper()
	items := make([]Item, n)
	for i := range items {
		items[i] = testItem(i)
	}
	if edit != nil {
		edit(items)
	}
	b, err := json.Marshal(quizOutput{Questions: items})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestGenerator_ValidQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: itemsJSON(t, 5, nil)})
	g := NewGenerator(mock, DefaultConfig())

	items, err := g.Generate(t.Context(), "Newton's laws", "NEET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	for i, it := range items {
		if it.CorrectAnswer < 0 || it.CorrectAnswer >= len(it.Choices) {
			t.Errorf("item %d: correctAnswer %d out of range", i, it.CorrectAnswer)
		}
	}

	req := mock.Calls[0]
	if req.Schema == nil || !req.Schema.Strict {
		t.Error("expected a strict schema")
	}
	if req.MaxTokens != 1200 {
		t.Errorf("expected 1200 max tokens, got %d", req.MaxTokens)
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{"exactly 5", `"Newton's laws"`, "NEET preparation", "Mock question for NEET"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerator_AcceptsBareArray(t *testing.T) {
	wrapped := itemsJSON(t, 5, nil)
	bare := strings.TrimSuffix(strings.TrimPrefix(wrapped, `{"questions":`), "}")

	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + bare + "\n```"})
	g := NewGenerator(mock, DefaultConfig())

	items, err := g.Generate(t.Context(), "optics", "JEE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
}

func TestGenerator_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "Here are your questions: ..."},
		{"too few", itemsJSON(t, 4, nil)},
		{"too many", itemsJSON(t, 6, nil)},
		{"three choices", itemsJSON(t, 5, func(it []Item) { it[2].Choices = it[2].Choices[:3] })},
		{"index out of range", itemsJSON(t, 5, func(it []Item) { it[0].CorrectAnswer = 4 })},
		{"negative index", itemsJSON(t, 5, func(it []Item) { it[0].CorrectAnswer = -1 })},
		{"blank choice", itemsJSON(t, 5, func(it []Item) { it[1].Choices[3] = "  " })},
		{"blank explanation", itemsJSON(t, 5, func(it []Item) { it[2].Explanation = "" })},
		{"blank source", itemsJSON(t, 5, func(it []Item) { it[4].Source = " " })},
		{"repeated question", itemsJSON(t, 5, func(it []Item) { it[3].Question = "  " + strings.ToUpper(it[1].Question) })},
		{"duplicate choice", itemsJSON(t, 5, func(it []Item) { it[0].Choices = []string{"Newton", "Joule", "newton ", "Watt"} })},
		{"string index", strings.Replace(itemsJSON(t, 5, nil), `"correctAnswer":1`, `"correctAnswer":"1"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(llm.NewMockProvider(llm.MockResponse{Text: tt.text}), DefaultConfig())
			_, err := g.Generate(t.Context(), "optics", "JEE")
			if !errors.Is(err, parse.ErrMalformedOutput) {
				t.Fatalf("expected ErrMalformedOutput, got %v", err)
			}
		})
	}
}

func TestGenerator_RequiresTopicAndExam(t *testing.T) {
	mock := llm.NewMockProvider()
	g := NewGenerator(mock, DefaultConfig())

	if _, err := g.Generate(t.Context(), "  ", "JEE"); !errors.Is(err, ErrTopicRequired) {
		t.Errorf("expected ErrTopicRequired, got %v", err)
	}
	if _, err := g.Generate(t.Context(), "optics", ""); !errors.Is(err, ErrExamRequired) {
		t.Errorf("expected ErrExamRequired, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls, got %d", mock.CallCount())
	}
}

func TestGenerator_ProviderErrorKeepsKind(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.Generate(t.Context(), "optics", "JEE")
	if llm.Classify(err) != llm.KindRateLimit {
		t.Fatalf("expected rate limit kind, got %v", err)
	}
	if errors.Is(err, parse.ErrMalformedOutput) {
		t.Fatal("provider failure must not look like malformed output")
	}
}

func TestGenerator_CustomSize(t *testing.T) {
	// Generate a default-size quiz first so both schemas are compiled in one
	// process.
	def := NewGenerator(llm.NewMockProvider(llm.MockResponse{Text: itemsJSON(t, 5, nil)}), DefaultConfig())
	if _, err := def.Generate(t.Context(), "optics", "JEE"); err != nil {
		t.Fatalf("default size: unexpected error: %v", err)
	}

	mock := llm.NewMockProvider(llm.MockResponse{Text: itemsJSON(t, 3, nil)})
	g := NewGenerator(mock, Config{Size: 3, MaxTokens: 800})

	items, err := g.Generate(t.Context(), "optics", "JEE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 || g.Size() != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if name := mock.Calls[0].Schema.Name; name != "exam-quiz-3" {
		t.Fatalf("expected schema name exam-quiz-3, got %q", name)
	}
}

func TestBuildSchema_StrictKeywordsOnly(t *testing.T) {
	s := buildSchema(5)
	if !s.Strict {
		t.Fatal("expected a strict schema")
	}
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		t.Fatal(err)
	}
	for _, kw := range []string{"minLength", "maxLength", "uniqueItems", "patternProperties"} {
		if strings.Contains(string(raw), `"`+kw+`"`) {
			t.Errorf("strict schema uses %s: %s", kw, raw)
		}
	}
}
