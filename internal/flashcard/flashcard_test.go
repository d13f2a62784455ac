package flashcard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/translate"
)

func sampleMCQs() []quizgen.MCQ {
	return []quizgen.MCQ{
		{
			Question:   "Who proposed the Turing Test?",
			Answer:     "Alan Turing",
			Options:    []string{"Alan Turing", "John McCarthy", "Marvin Minsky", "Claude Shannon"},
			Difficulty: quizgen.DifficultyEasy,
		},
		{
			Question:   "What year was the Dartmouth Conference?",
			Answer:     "1956",
			Options:    []string{"1956", "1945", "1969", "1776"},
			Difficulty: quizgen.DifficultyMedium,
		},
	}
}

func TestBuildProjectsQuestionAndAnswer(t *testing.T) {
	mcqs := sampleMCQs()
	cards := Build(mcqs)

	if len(cards) != len(mcqs) {
		t.Fatalf("got %d cards, want %d", len(cards), len(mcqs))
	}
	for i, card := range cards {
		if card.Question != mcqs[i].Question {
			t.Errorf("card %d question = %q, want %q", i, card.Question, mcqs[i].Question)
		}
		if card.Answer != mcqs[i].Answer {
			t.Errorf("card %d answer = %q, want %q", i, card.Answer, mcqs[i].Answer)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	if cards := Build(nil); len(cards) != 0 {
		t.Errorf("Build(nil) = %v, want empty", cards)
	}
}

func TestTranslateEnglishNoOp(t *testing.T) {
	mock := llm.NewMockProvider()
	tr := translate.New(mock, translate.DefaultConfig())
	cards := Build(sampleMCQs())

	got := Translate(context.Background(), tr, cards, "English")
	if len(got) != len(cards) || got[0] != cards[0] {
		t.Errorf("English translation changed the cards")
	}
	if mock.CallCount() != 0 {
		t.Errorf("CallCount() = %d, want 0", mock.CallCount())
	}
}

func TestTranslateFailureKeepsCards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	tr := translate.New(mock, translate.DefaultConfig())
	cards := Build(sampleMCQs())

	got := Translate(context.Background(), tr, cards, "Spanish")
	if len(got) != len(cards) || got[0] != cards[0] {
		t.Errorf("failed translation changed the cards")
	}
}

func TestTranslateSuccess(t *testing.T) {
	translated := []Flashcard{
		{Question: "Quien propuso el Test de Turing?", Answer: "Alan Turing"},
		{Question: "En que anio fue la Conferencia de Dartmouth?", Answer: "1956"},
	}
	payload, _ := json.Marshal(translated)
	content, _ := json.Marshal(string(payload))

	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	tr := translate.New(mock, translate.DefaultConfig())

	got := Translate(context.Background(), tr, Build(sampleMCQs()), "Spanish")
	if len(got) != 2 || got[0].Question != translated[0].Question {
		t.Errorf("got %+v, want translated cards", got)
	}
}
