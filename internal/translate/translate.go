// Package translate renders quiz content into a target language using an
// LLM, with a strict pass-through contract on failure.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quillium/quillium/internal/llm"
)

// Config controls translation requests.
type Config struct {
	// MaxTokens is the token budget for the translated response.
	MaxTokens int

	// Temperature is kept low so the model stays close to the source.
	Temperature float64

	// Timeout bounds a single translation call.
	Timeout time.Duration
}

// DefaultConfig returns recommended translation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2200,
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}
}

// Translator translates JSON-shaped quiz content via an LLM provider.
type Translator struct {
	provider llm.Provider
	config   Config
}

// New creates a Translator. A nil provider is allowed and makes every
// translation a pass-through.
func New(provider llm.Provider, cfg Config) *Translator {
	return &Translator{provider: provider, config: cfg}
}

// Ready reports whether a translation backend is configured.
func (t *Translator) Ready() bool {
	return t != nil && t.provider != nil
}

const systemPrompt = `You are a translator for educational quiz content.

Rules:
- Translate ALL text including questions, answers, and options.
- Maintain the EXACT same JSON structure as the input.
- Keep the answer matching exactly one of the translated options.
- Do not change the order of options.
- Return ONLY the JSON array.`

// TranslateJSON translates a JSON array of records into targetLang,
// preserving structure and ordering. On any failure it returns the
// input unchanged together with the error; callers treat translation
// failure as non-fatal.
func (t *Translator) TranslateJSON(ctx context.Context, items json.RawMessage, targetLang string) (json.RawMessage, error) {
	if targetLang == "English" || len(items) == 0 || string(items) == "[]" {
		return items, nil
	}
	if !t.Ready() {
		return items, fmt.Errorf("no translation backend configured")
	}

	ctx = llm.WithPurpose(ctx, "translation")
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following JSON array to %s.\n\nJSON to translate:\n", targetLang)
	b.Write(items)

	resp, err := t.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
	})
	if err != nil {
		return items, fmt.Errorf("translation call failed: %w", err)
	}

	raw := llm.ExtractJSON(contentAsText(resp.Content))

	// The translated payload must still be a JSON array; anything else
	// falls back to the untranslated input. Deeper structural checks are
	// deliberately left to the model's shape-preservation.
	var check []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &check); err != nil {
		return items, fmt.Errorf("parse translated response: %w", err)
	}

	return json.RawMessage(raw), nil
}

// contentAsText unwraps the provider response. Content is either a JSON
// string holding free text or already-structured JSON.
func contentAsText(content json.RawMessage) string {
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	return string(content)
}
