package quiz

// ChoicesPerItem is the fixed number of answer choices on every item.
const ChoicesPerItem = 4

// Config holds generation settings for exam quizzes.
type Config struct {
	// Size is the exact number of items a quiz must contain.
	Size        int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the HTTP and CLI surfaces.
func DefaultConfig() Config {
	return Config{
		Size:        5,
		MaxTokens:   1200,
		Temperature: 0.7,
	}
}
