// Package quizgen turns source text into validated multiple-choice
// questions, using an LLM when one is configured and a deterministic
// sentence-based generator when not.
package quizgen

// MCQ represents a validated multiple-choice question ready for display.
type MCQ struct {
	// Question is the prompt shown to the learner.
	Question string `json:"question"`

	// Answer is the correct option. Always matches one entry of Options
	// verbatim.
	Answer string `json:"answer"`

	// Options holds exactly 4 unique choices, one of which is Answer.
	Options []string `json:"options"`

	// Difficulty is one of easy, medium, hard.
	Difficulty Difficulty `json:"difficulty"`
}

// Difficulty classifies how hard a question is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the three allowed values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RawMCQ is an unvalidated question as parsed from the LLM response.
// Normalize turns it into an MCQ or rejects it.
type RawMCQ struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// GenerateInput holds all context needed to produce a quiz.
type GenerateInput struct {
	// Text is the source material, typically extracted from a PDF.
	Text string

	// Language is the target output language. "English" skips translation.
	Language string

	// MaxQuestions caps the number of questions returned.
	MaxQuestions int
}
