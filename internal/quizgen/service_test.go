package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/translate"
)

const sourceText = "The water cycle describes how water moves through the atmosphere and back to the surface. " +
	"Evaporation turns surface water into vapor that rises into the air. " +
	"Condensation forms clouds as the vapor cools at altitude. " +
	"Precipitation returns the water to the ground as rain or snow."

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newService(provider llm.Provider, trProvider llm.Provider) *Service {
	var tr *translate.Translator
	if trProvider != nil {
		tr = translate.New(trProvider, translate.DefaultConfig())
	}
	return New(provider, tr, DefaultConfig(), quietLogger())
}

func mcqJSON(t *testing.T, mcqs []RawMCQ) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(mcqs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return payload
}

func TestGenerateShortTextReturnsNothing(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{
		Text:         strings.Repeat("x", 40),
		Language:     "English",
		MaxQuestions: 5,
	})

	if len(got) != 0 {
		t.Errorf("got %d questions, want 0", len(got))
	}
	if mock.CallCount() != 0 {
		t.Errorf("CallCount() = %d, want 0 (no LLM call for short text)", mock.CallCount())
	}
}

func TestGenerateHappyPath(t *testing.T) {
	raws := []RawMCQ{
		{Question: "What turns surface water into vapor?", Answer: "Evaporation",
			Options: []string{"Evaporation", "Condensation", "Precipitation", "Sublimation"}, Difficulty: "easy"},
		{Question: "What forms clouds?", Answer: "Condensation",
			Options: []string{"Condensation", "Evaporation", "Runoff", "Collection"}, Difficulty: "medium"},
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2", len(got))
	}
	if got[0].Answer != "Evaporation" {
		t.Errorf("first answer = %q", got[0].Answer)
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount() = %d, want 1", mock.CallCount())
	}
}

func TestGenerateNilProviderUsesFallback(t *testing.T) {
	svc := newService(nil, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if len(got) == 0 {
		t.Fatal("fallback produced no questions")
	}
	for _, mcq := range got {
		if mcq.Options[0] != mcq.Answer {
			t.Errorf("fallback answer %q is not the first option", mcq.Answer)
		}
	}
}

func TestGenerateLLMErrorUsesFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 3})

	if len(got) == 0 {
		t.Fatal("LLM failure did not degrade to fallback")
	}
	if len(got) > 3 {
		t.Errorf("got %d questions, want at most 3", len(got))
	}
	if got[0].Difficulty != DifficultyMedium {
		t.Errorf("fallback difficulty = %q, want medium", got[0].Difficulty)
	}
}

func TestGenerateMalformedResponseUsesFallback(t *testing.T) {
	content, _ := json.Marshal("I could not generate questions, sorry!")
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if len(got) == 0 {
		t.Fatal("parse failure did not degrade to fallback")
	}
}

func TestGenerateStripsCodeFences(t *testing.T) {
	raws := []RawMCQ{
		{Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
	}
	payload, _ := json.Marshal(raws)
	content, _ := json.Marshal("```json\n" + string(payload) + "\n```")
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
}

func TestGenerateDropsInvalidItems(t *testing.T) {
	raws := []RawMCQ{
		{Question: "Valid?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
		{Question: "Broken", Answer: "A", Options: []string{"A", "B"}, Difficulty: "easy"},
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1 (invalid item dropped)", len(got))
	}
	if got[0].Question != "Valid?" {
		t.Errorf("surviving question = %q", got[0].Question)
	}
}

func TestGenerateCapsAtMaxQuestions(t *testing.T) {
	var raws []RawMCQ
	for range 6 {
		raws = append(raws, RawMCQ{
			Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy",
		})
	}
	// Duplicate questions are fine here, each normalizes independently.
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	svc := newService(mock, nil)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 4})

	if len(got) != 4 {
		t.Errorf("got %d questions, want 4", len(got))
	}
}

func TestGenerateEnglishSkipsTranslator(t *testing.T) {
	raws := []RawMCQ{
		{Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
	}
	genMock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	trMock := llm.NewMockProvider()
	svc := newService(genMock, trMock)

	svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "English", MaxQuestions: 5})

	if trMock.CallCount() != 0 {
		t.Errorf("translator CallCount() = %d, want 0 for English", trMock.CallCount())
	}
}

func TestGenerateTranslatesNonEnglish(t *testing.T) {
	raws := []RawMCQ{
		{Question: "What is water?", Answer: "H2O", Options: []string{"H2O", "CO2", "O2", "N2"}, Difficulty: "easy"},
	}
	translated := []MCQ{
		{Question: "Que es el agua?", Answer: "H2O", Options: []string{"H2O", "CO2", "O2", "N2"}, Difficulty: DifficultyEasy},
	}
	trPayload, _ := json.Marshal(translated)
	trContent, _ := json.Marshal(string(trPayload))

	genMock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	trMock := llm.NewMockProvider(llm.MockResponse{Content: trContent})
	svc := newService(genMock, trMock)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "Spanish", MaxQuestions: 5})

	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
	if got[0].Question != "Que es el agua?" {
		t.Errorf("question = %q, want translated text", got[0].Question)
	}
	if trMock.CallCount() != 1 {
		t.Errorf("translator CallCount() = %d, want 1", trMock.CallCount())
	}
}

func TestGenerateTranslationFailureReturnsEnglish(t *testing.T) {
	raws := []RawMCQ{
		{Question: "What is water?", Answer: "H2O", Options: []string{"H2O", "CO2", "O2", "N2"}, Difficulty: "easy"},
	}
	genMock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	trMock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := newService(genMock, trMock)

	got := svc.Generate(context.Background(), GenerateInput{Text: sourceText, Language: "Spanish", MaxQuestions: 5})

	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
	if got[0].Question != "What is water?" {
		t.Errorf("question = %q, want the untranslated original", got[0].Question)
	}
}

func TestGenerateTruncatesLongText(t *testing.T) {
	raws := []RawMCQ{
		{Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	svc := newService(mock, nil)

	long := strings.Repeat("water cycle. ", 1000) // well past the 6000 char limit
	svc.Generate(context.Background(), GenerateInput{Text: long, Language: "English", MaxQuestions: 5})

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount() = %d, want 1", mock.CallCount())
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, truncationMarker) {
		t.Error("prompt missing the truncation marker")
	}
	cfg := DefaultConfig()
	if len(prompt) > cfg.TextLimit+len(truncationMarker)+500 {
		t.Errorf("prompt length %d suggests text was not truncated", len(prompt))
	}
}

func TestGenerateTruncationKeepsValidUTF8(t *testing.T) {
	raws := []RawMCQ{
		{Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcqJSON(t, raws)})
	svc := newService(mock, nil)

	// Multi-byte runes straddle the truncation limit.
	cfg := DefaultConfig()
	long := strings.Repeat("a", cfg.TextLimit-1) + strings.Repeat("é", 50)
	svc.Generate(context.Background(), GenerateInput{Text: long, Language: "English", MaxQuestions: 5})

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount() = %d, want 1", mock.CallCount())
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !utf8.ValidString(prompt) {
		t.Error("truncated prompt is not valid UTF-8")
	}
	if !strings.Contains(prompt, truncationMarker) {
		t.Error("prompt missing the truncation marker")
	}
	if !strings.Contains(prompt, "é"+truncationMarker) {
		t.Error("rune at the limit should survive truncation intact")
	}
}
