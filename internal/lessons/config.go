package lessons

// Config holds generation settings for the content bundle and tutor replies.
type Config struct {
	ContentMaxTokens   int
	ContentTemperature float64

	ReplyMaxTokens   int
	ReplyTemperature float64

	// MaxHistoryTurns caps how many prior exchanges are replayed to the
	// model on each turn.
	MaxHistoryTurns int
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		ContentMaxTokens:   2048,
		ContentTemperature: 0.7,
		ReplyMaxTokens:     800,
		ReplyTemperature:   0.7,
		MaxHistoryTurns:    6,
	}
}
