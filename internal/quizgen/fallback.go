package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// fallbackDistractors are the fixed distractors used for every
// fallback-generated question.
var fallbackDistractors = []string{
	"A different concept from the text",
	"An alternative interpretation",
	"Related information not mentioned here",
}

// fallbackAnswerLimit truncates long sentences used as answers.
const fallbackAnswerLimit = 100

// Fallback produces structurally valid questions without an LLM by
// splitting the text into sentences. The result is a degraded-mode
// contract: the questions are well-formed but semantically weak.
func Fallback(text string, maxQuestions int) []MCQ {
	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	n := min(maxQuestions, len(sentences))
	mcqs := make([]MCQ, 0, n)
	for i := 0; i < n; i++ {
		sentence := sentences[i]
		if t := truncateRunes(sentence, fallbackAnswerLimit); t != sentence {
			sentence = t + "..."
		}

		mcqs = append(mcqs, MCQ{
			Question: fmt.Sprintf("What is the main idea of: '%s'?", sentence),
			Answer:   sentence,
			Options: []string{
				sentence,
				fallbackDistractors[0],
				fallbackDistractors[1],
				fallbackDistractors[2],
			},
			Difficulty: DifficultyMedium,
		})
	}

	return mcqs
}

// truncateRunes cuts s after limit runes. Counting bytes instead would
// split a multi-byte rune at the limit and leave invalid UTF-8 behind.
func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
