package quiz

// Config holds quiz generation settings.
type Config struct {
	Questions   int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for quiz generation.
func DefaultConfig() Config {
	return Config{
		Questions:   10,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
