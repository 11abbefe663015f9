// Package parse turns raw LLM output into trusted values. Every generation
// flow passes its text through JSON or Text before handing anything to a
// caller; malformed output surfaces as ErrMalformedOutput and is never
// replaced with placeholder content.
package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
)

// ErrMalformedOutput is the sentinel matched by every MalformedOutputError.
var ErrMalformedOutput = errors.New("malformed model output")

// MalformedOutputError reports model output that failed decoding, schema
// validation or a domain check.
type MalformedOutputError struct {
	// Flow names the generation flow, e.g. "lesson-content".
	Flow string
	// Raw is the text exactly as the model returned it.
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: malformed model output: %v", e.Flow, e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

// Check is a domain rule applied after schema validation.
type Check[T any] func(T) error

// JSON decodes raw into T. When schema is non-nil the decoded document must
// validate against it first. Checks run in order and the first failure wins.
func JSON[T any](flow, raw string, schema *llm.Schema, checks ...Check[T]) (T, error) {
	var zero T

	body := StripFences(raw)
	if body == "" {
		return zero, &MalformedOutputError{Flow: flow, Raw: raw, Err: errors.New("empty output")}
	}

	if schema != nil {
		if err := validateSchema(schema, []byte(body)); err != nil {
			return zero, &MalformedOutputError{Flow: flow, Raw: raw, Err: err}
		}
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return zero, &MalformedOutputError{Flow: flow, Raw: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	for _, check := range checks {
		if err := check(out); err != nil {
			return zero, &MalformedOutputError{Flow: flow, Raw: raw, Err: err}
		}
	}
	return out, nil
}

// Text accepts free-form output as long as it is not blank.
func Text(flow, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &MalformedOutputError{Flow: flow, Raw: raw, Err: errors.New("empty output")}
	}
	return raw, nil
}

// StripFences removes a surrounding markdown code fence. Models sometimes
// wrap JSON in ```json ... ``` even when asked not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
