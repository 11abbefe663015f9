package lessons

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
)

const contentSystemPrompt = `You are an expert educational content creator. Create engaging, age-appropriate content that follows best practices from Khan Academy and other top educational platforms.`

const contentFormat = `{
  "hook": {
    "title": "Engaging title",
    "description": "Real-world scenario or interesting fact that hooks the student",
    "question": "An intriguing question to spark curiosity"
  },
  "lesson": {
    "title": "Lesson title",
    "concepts": ["concept1", "concept2", "concept3"],
    "explanation": "Clear, step-by-step explanation using Khan Academy style teaching",
    "examples": [
      {
        "problem": "Example problem",
        "solution": "Step-by-step solution",
        "explanation": "Why this works"
      }
    ]
  },
  "quiz": {
    "questions": [
      {
        "question": "Multiple choice question",
        "options": ["A", "B", "C", "D"],
        "correct": "A",
        "explanation": "Why this is correct"
      }
    ]
  }
}`

func buildContentUserMessage(topic string, level Level) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create an engaging learning experience for a %s student learning about %s.\n", level, topic))
	b.WriteString(`
Instructions:
1. Open with a hook: a real-world scenario or surprising fact, and a question that sparks curiosity.
2. Teach the topic with a structured explanation that builds step by step. List the key concepts in order.
3. Include at least one worked example with a full solution and why it works.
4. Finish with a multiple-choice check. Every question has exactly 4 options, and "correct" must repeat the text of the right option exactly.
5. Pitch vocabulary and difficulty at the student's level.

Respond with a single JSON object in exactly this format and nothing else:
`)
	b.WriteString(contentFormat)

	return b.String()
}

const tutorSystemPrompt = `You are a supportive, knowledgeable tutor. Be encouraging, patient, and adapt your explanations to the student's level. Use analogies and real-world examples when helpful.`

func buildTurnUserMessage(in ReplyInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are a patient, encouraging tutor helping a %s student learn about %s.\n\n", in.Level, in.Topic))

	lesson, err := json.Marshal(in.Lesson)
	if err != nil {
		// Lesson is plain strings and slices; Marshal cannot fail on it.
		lesson = []byte("{}")
	}
	b.WriteString(fmt.Sprintf("Current lesson content: %s\n\n", lesson))

	if strings.TrimSpace(in.QuizAnswer) != "" {
		b.WriteString(fmt.Sprintf("The student answered a quiz question. Their answer was: %s. Provide encouraging feedback and explain if they got it right or wrong.\n\n", in.QuizAnswer))
	} else {
		b.WriteString(fmt.Sprintf("The student said: %q. Respond as a helpful tutor, asking follow-up questions to check understanding, providing additional explanations if needed, or moving to the next concept if they seem ready.\n\n", in.Message))
	}

	b.WriteString("Respond in a conversational, encouraging way with a single reply in plain prose. If the student seems confused, provide additional examples or explanations. If they seem to understand, ask a follow-up question to deepen their knowledge or move to the next concept.")

	return b.String()
}

// buildTurnMessages returns the last maxHistory exchanges as alternating
// user/assistant messages followed by the new turn prompt.
func buildTurnMessages(in ReplyInput, maxHistory int) []llm.Message {
	history := in.History
	if maxHistory >= 0 && len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	msgs := make([]llm.Message, 0, 2*len(history)+1)
	for _, ex := range history {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: ex.Student},
			llm.Message{Role: llm.RoleAssistant, Content: ex.Tutor},
		)
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: buildTurnUserMessage(in)})
}
