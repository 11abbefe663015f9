package llm

import (
	"errors"
	"os"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TUTOR_LLM_PROVIDER", "TUTOR_LLM_TIMEOUT",
		"TUTOR_OPENAI_API_KEY", "TUTOR_OPENAI_MODEL",
		"TUTOR_ANTHROPIC_API_KEY", "TUTOR_GEMINI_API_KEY", "TUTOR_OPENROUTER_API_KEY",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		// Setenv registers the restore; Unsetenv makes the var truly absent.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Fatalf("provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4" {
		t.Fatalf("model = %q, want gpt-4", cfg.OpenAI.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Fatalf("timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Multiplier != 2 {
		t.Fatalf("unexpected retry config: %+v", cfg.Retry)
	}
	if !errors.Is(cfg.Validate(), ErrMissingAPIKey) {
		t.Fatalf("expected missing key, got %v", cfg.Validate())
	}
}

func TestConfigFromEnv_StandardKeyFallback(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("anthropic key not picked up")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfigFromEnv_ExplicitOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-standard")
	t.Setenv("TUTOR_OPENAI_API_KEY", "sk-tutor")
	t.Setenv("TUTOR_OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("TUTOR_LLM_TIMEOUT", "5s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-tutor" {
		t.Fatalf("expected TUTOR_OPENAI_API_KEY to win, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.ModelName() != "gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.ModelName())
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
}

func TestConfigFromEnv_BadDuration(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("TUTOR_LLM_TIMEOUT", "soon")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
