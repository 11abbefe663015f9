package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert exam coach. You write accurate, exam-style multiple-choice questions and always cite where each question comes from.`

// MockSourceLabel is the source recorded for a synthetic question.
func MockSourceLabel(exam string) string {
	return "Mock question for " + exam
}

func buildUserMessage(topic, exam string, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d multiple-choice questions on the topic %q suitable for %s preparation.\n", count, topic, exam)
	b.WriteString(`
For each question provide:
- "question": the question text
- "choices": exactly 4 answer choices
- "correctAnswer": the 0-based index of the correct choice
- "explanation": a brief explanation of the answer
`)
	fmt.Fprintf(&b, "- \"source\": the real source of the question, e.g. 'IIT JEE Physics 2022' or 'NEET 2021'\n\n")
	fmt.Fprintf(&b, "Prefer real questions from past papers. If you cannot find one, write a high-quality mock question and set its source to '%s'.\n\n", MockSourceLabel(exam))
	b.WriteString(`Respond with a single JSON object of the form {"questions": [...]} and nothing else.`)

	return b.String()
}
