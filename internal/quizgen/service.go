package quizgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/translate"
)

// Service orchestrates the full generation pipeline: LLM drafting,
// normalization, fallback and translation.
type Service struct {
	provider   llm.Provider
	translator *translate.Translator
	config     Config
	log        *logrus.Logger
}

// New creates a Service. provider may be nil, which puts the service
// into fallback-only mode. translator may be nil, which makes every
// translation a pass-through.
func New(provider llm.Provider, translator *translate.Translator, cfg Config, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{provider: provider, translator: translator, config: cfg, log: log}
}

// TranslatorReady reports whether a translation backend is configured.
func (s *Service) TranslatorReady() bool {
	return s.translator.Ready()
}

// Generate produces up to input.MaxQuestions validated questions from
// input.Text. It never fails outright: LLM trouble degrades to the
// deterministic fallback, translation trouble returns English content.
// An empty result means the source text was unusable.
func (s *Service) Generate(ctx context.Context, input GenerateInput) []MCQ {
	text := strings.TrimSpace(input.Text)
	if len(text) < s.config.MinTextLength {
		return nil
	}

	maxQuestions := input.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = s.config.MaxQuestions
	}

	if t := truncateRunes(text, s.config.TextLimit); t != text {
		text = t + truncationMarker
	}

	mcqs := s.draft(ctx, text, maxQuestions)
	if len(mcqs) > maxQuestions {
		mcqs = mcqs[:maxQuestions]
	}

	if input.Language != "" && input.Language != "English" && len(mcqs) > 0 {
		mcqs = s.translateMCQs(ctx, mcqs, input.Language)
	}

	return mcqs
}

// draft asks the LLM for raw questions and normalizes them, falling
// back to sentence-based generation on any failure.
func (s *Service) draft(ctx context.Context, text string, maxQuestions int) []MCQ {
	if s.provider == nil {
		s.log.Info("no LLM provider configured, using fallback generation")
		return Fallback(text, maxQuestions)
	}

	raws, err := s.askLLM(ctx, text, maxQuestions)
	if err != nil {
		s.log.WithError(err).Warn("LLM generation failed, using fallback")
		return Fallback(text, maxQuestions)
	}

	if len(raws) > maxQuestions {
		raws = raws[:maxQuestions]
	}

	mcqs := make([]MCQ, 0, len(raws))
	for _, raw := range raws {
		if mcq, ok := Normalize(raw); ok {
			mcqs = append(mcqs, *mcq)
		}
	}

	s.log.WithFields(logrus.Fields{
		"raw":   len(raws),
		"valid": len(mcqs),
	}).Info("validated LLM questions")

	return mcqs
}

// askLLM performs a single generation call. No retries: a failed
// attempt falls straight back to the deterministic generator.
func (s *Service) askLLM(ctx context.Context, text string, maxQuestions int) ([]RawMCQ, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text, maxQuestions)},
		},
		Schema:      MCQListSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, err
	}

	payload := llm.ExtractJSON(contentAsText(resp.Content))

	var raws []RawMCQ
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		return nil, err
	}

	return raws, nil
}

// translateMCQs runs the validated list through the translator.
// Translation failure returns the English list unchanged.
func (s *Service) translateMCQs(ctx context.Context, mcqs []MCQ, language string) []MCQ {
	payload, err := json.Marshal(mcqs)
	if err != nil {
		return mcqs
	}

	translated, err := s.translator.TranslateJSON(ctx, payload, language)
	if err != nil {
		s.log.WithError(err).Warn("translation failed, returning English questions")
		return mcqs
	}

	var out []MCQ
	if err := json.Unmarshal(translated, &out); err != nil {
		s.log.WithError(err).Warn("translated payload did not parse, returning English questions")
		return mcqs
	}

	return out
}

// contentAsText unwraps the provider response. Content is either a JSON
// string holding free text or already-structured JSON.
func contentAsText(content json.RawMessage) string {
	var str string
	if err := json.Unmarshal(content, &str); err == nil {
		return str
	}
	return string(content)
}
