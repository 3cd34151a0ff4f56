package analysis

// Config holds analysis generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for analysis generation.
// The report carries ten links and a multi-week plan, so it needs room.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.4,
	}
}
