// Package flashcard derives study flashcards from generated questions.
package flashcard

import (
	"context"
	"encoding/json"

	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/translate"
)

// Flashcard is a question/answer pair projected from an MCQ.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Build projects each MCQ onto a Flashcard. Order and length are
// preserved.
func Build(mcqs []quizgen.MCQ) []Flashcard {
	cards := make([]Flashcard, len(mcqs))
	for i, mcq := range mcqs {
		cards[i] = Flashcard{Question: mcq.Question, Answer: mcq.Answer}
	}
	return cards
}

// Translate renders the cards into targetLang. Failure returns the
// input unchanged, matching the quiz translation contract.
func Translate(ctx context.Context, tr *translate.Translator, cards []Flashcard, targetLang string) []Flashcard {
	if targetLang == "English" || len(cards) == 0 {
		return cards
	}

	payload, err := json.Marshal(cards)
	if err != nil {
		return cards
	}

	translated, err := tr.TranslateJSON(ctx, payload, targetLang)
	if err != nil {
		return cards
	}

	var out []Flashcard
	if err := json.Unmarshal(translated, &out); err != nil {
		return cards
	}

	return out
}
