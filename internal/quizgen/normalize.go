package quizgen

import "strings"

// vagueTerms is the denylist of substrings that mark an option as too
// generic to test real understanding. Matched against the lowercased
// option text.
var vagueTerms = []string{
	"wrong", "incorrect", "not correct", "false", "invalid",
	"different concept", "alternative perspective", "common misconception",
	"broader interpretation", "related but different", "someone else",
	"not this", "other answer", "another option",
}

// Normalize validates and repairs a raw LLM question. It returns the
// normalized MCQ and true, or nil and false when the item cannot be
// salvaged.
//
// The pipeline prefers repair over rejection: once an item clears the
// structural checks, missing or broken pieces are synthesized rather
// than causing a drop. The one exception is an item whose options are
// all cleaned away, which would otherwise be rebuilt entirely from
// fillers with a "correct answer" unrelated to the source text.
func Normalize(raw RawMCQ) (*MCQ, bool) {
	question := strings.TrimSpace(raw.Question)
	answer := strings.TrimSpace(raw.Answer)

	if question == "" || answer == "" || len(raw.Options) == 0 {
		return nil, false
	}
	if len(raw.Options) != 4 {
		return nil, false
	}

	// An answer that matches no option is repaired, not rejected.
	if !containsString(raw.Options, answer) {
		answer = raw.Options[0]
	}

	// Clean options: trim, drop empties, drop vague distractors, drop
	// case-insensitive duplicates. First occurrence wins.
	seen := make(map[string]bool, 4)
	cleaned := make([]string, 0, 4)
	for _, opt := range raw.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}

		lower := strings.ToLower(opt)
		if isVague(lower) {
			continue
		}
		if seen[lower] {
			continue
		}

		seen[lower] = true
		cleaned = append(cleaned, opt)
	}

	// Every original option was vague, empty or duplicated. A question
	// rebuilt purely from fillers has no grounding in the source text.
	if len(cleaned) == 0 {
		return nil, false
	}

	// Synthesize fillers until exactly 4 unique options exist. The
	// attempt counter advances past candidates already present among the
	// options, so the loop always terminates.
	for attempt := len(cleaned); len(cleaned) < 4; attempt++ {
		filler := fillerFor(question, attempt)
		lower := strings.ToLower(filler)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		cleaned = append(cleaned, filler)
	}

	if !containsString(cleaned, answer) {
		answer = cleaned[0]
	}

	difficulty := Difficulty(strings.ToLower(strings.TrimSpace(raw.Difficulty)))
	if !difficulty.Valid() {
		difficulty = classifyDifficulty(question, answer)
	}

	return &MCQ{
		Question:   question,
		Answer:     answer,
		Options:    cleaned[:4],
		Difficulty: difficulty,
	}, true
}

func isVague(lowerOpt string) bool {
	for _, term := range vagueTerms {
		if strings.Contains(lowerOpt, term) {
			return true
		}
	}
	return false
}

func containsString(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}

// classifyDifficulty derives difficulty from the combined word count of
// question and answer.
func classifyDifficulty(question, answer string) Difficulty {
	totalWords := len(strings.Fields(question)) + len(strings.Fields(answer))
	switch {
	case totalWords < 20:
		return DifficultyEasy
	case totalWords < 40:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Filler candidate tables, cycled deterministically by the number of
// fillers already placed.
var (
	fillerPeople = []string{
		"Albert Einstein", "Marie Curie", "Isaac Newton", "Charles Darwin",
		"Alan Turing", "Stephen Hawking", "Thomas Edison", "Nikola Tesla",
	}
	fillerCapitals = []string{
		"London", "Berlin", "Tokyo", "Beijing", "Moscow", "Delhi", "Canberra", "Ottawa",
	}
	fillerYears = []string{
		"1945", "1969", "1776", "2001", "1492", "1914", "1989", "2008",
	}
	fillerGeneric = []string{
		"A closely related but distinct concept",
		"An important but different aspect",
		"A frequently confused alternative",
		"A similar but not identical element",
	}
)

// fillerFor picks a synthetic option matching the question's topic.
// index is the number of options already present, so repeated calls walk
// the candidate list deterministically.
func fillerFor(question string, index int) string {
	lower := strings.ToLower(question)

	switch {
	case strings.HasPrefix(lower, "who"):
		return fillerPeople[index%len(fillerPeople)]
	case strings.Contains(lower, "capital"):
		return fillerCapitals[index%len(fillerCapitals)]
	case strings.Contains(lower, "year"),
		strings.Contains(lower, "when"),
		strings.Contains(lower, "date"):
		return fillerYears[index%len(fillerYears)]
	default:
		return fillerGeneric[index%len(fillerGeneric)]
	}
}
