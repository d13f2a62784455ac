package llm

import (
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUILLIUM_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"QUILLIUM_GEMINI_MODEL", "QUILLIUM_OPENAI_MODEL",
		"QUILLIUM_ANTHROPIC_MODEL", "QUILLIUM_OPENROUTER_MODEL",
		"QUILLIUM_LLM_RETRY_ATTEMPTS",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-flash-lite" {
		t.Errorf("Gemini.Model = %q, want gemini-flash-lite", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("Retry.MaxAttempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
}

func TestDiscoverConfigPriority(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("DiscoverConfig() ok = false, want true")
	}
	// OpenAI outranks OpenRouter in the probe order.
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
}

func TestDiscoverConfigGeminiFirst(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("Provider = %q (ok=%v), want gemini", cfg.Provider, ok)
	}
}

func TestDiscoverConfigNoKeys(t *testing.T) {
	clearProviderEnv(t)

	if _, ok := DiscoverConfig(); ok {
		t.Error("DiscoverConfig() ok = true with no keys set, want false")
	}
}

func TestDiscoverConfigExplicitOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")
	t.Setenv("QUILLIUM_LLM_PROVIDER", "openrouter")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openrouter" {
		t.Errorf("Provider = %q (ok=%v), want openrouter", cfg.Provider, ok)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for gemini without key, want error")
	}

	cfg.Gemini.APIKey = "g-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error for mock: %v", err)
	}

	cfg.Provider = "bedrock"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for unknown provider, want error")
	}
}

func TestTranslationProviderFallsBackToGeneration(t *testing.T) {
	clearProviderEnv(t)

	gen := NewMockProvider()
	p, err := NewTranslationProviderFromEnv(t.Context(), nil, gen)
	if err != nil {
		t.Fatalf("NewTranslationProviderFromEnv() error: %v", err)
	}
	if p != Provider(gen) {
		t.Error("expected the generation provider when OPENROUTER_API_KEY is unset")
	}
}

func TestTranslationProviderPrefersOpenRouter(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-test")

	gen := NewMockProvider()
	p, err := NewTranslationProviderFromEnv(t.Context(), nil, gen)
	if err != nil {
		t.Fatalf("NewTranslationProviderFromEnv() error: %v", err)
	}
	if p == Provider(gen) {
		t.Error("expected a dedicated OpenRouter provider, got the generation provider")
	}
}

func TestConfigFromEnvRetryAttempts(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUILLIUM_LLM_RETRY_ATTEMPTS", "3")

	if got := ConfigFromEnv().Retry.MaxAttempts; got != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", got)
	}

	t.Setenv("QUILLIUM_LLM_RETRY_ATTEMPTS", "garbage")
	if got := ConfigFromEnv().Retry.MaxAttempts; got != 1 {
		t.Errorf("Retry.MaxAttempts = %d for invalid value, want the default 1", got)
	}

	t.Setenv("QUILLIUM_LLM_RETRY_ATTEMPTS", "0")
	if got := ConfigFromEnv().Retry.MaxAttempts; got != 1 {
		t.Errorf("Retry.MaxAttempts = %d for zero, want the default 1", got)
	}
}

func TestRetryBudgetAppliesToTranslationOnly(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-test")
	t.Setenv("QUILLIUM_LLM_RETRY_ATTEMPTS", "3")

	tr, err := NewTranslationProviderFromEnv(t.Context(), nil, nil)
	if err != nil {
		t.Fatalf("NewTranslationProviderFromEnv() error: %v", err)
	}
	if _, ok := tr.(*RetryProvider); !ok {
		t.Errorf("translation provider = %T, want *RetryProvider", tr)
	}

	gen, err := NewProviderFromEnv(t.Context(), nil)
	if err != nil {
		t.Fatalf("NewProviderFromEnv() error: %v", err)
	}
	if _, ok := gen.(*RetryProvider); ok {
		t.Error("generation provider must not retry, it degrades to the fallback generator")
	}
}

func TestConfigFromEnvModelOverrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("QUILLIUM_GEMINI_MODEL", "gemini-flash")
	t.Setenv("QUILLIUM_OPENROUTER_MODEL", "deepseek/deepseek-r1")

	cfg := ConfigFromEnv()
	if cfg.Gemini.Model != "gemini-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-flash", cfg.Gemini.Model)
	}
	if cfg.OpenRouter.Model != "deepseek/deepseek-r1" {
		t.Errorf("OpenRouter.Model = %q, want deepseek/deepseek-r1", cfg.OpenRouter.Model)
	}
}
