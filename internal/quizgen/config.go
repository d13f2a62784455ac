package quizgen

// Config controls the behavior of the Service.
type Config struct {
	// MinTextLength is the minimum trimmed source length. Shorter inputs
	// produce no questions at all.
	MinTextLength int

	// TextLimit is the maximum number of source characters sent to the
	// LLM. Longer inputs are truncated with a marker appended.
	TextLimit int

	// MaxQuestions is the default cap when GenerateInput leaves it unset.
	MaxQuestions int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MinTextLength: 50,
		TextLimit:     6000,
		MaxQuestions:  20,
		MaxTokens:     4000,
		Temperature:   0.3,
	}
}

// truncationMarker is appended when source text exceeds TextLimit.
const truncationMarker = "... [text truncated]"
