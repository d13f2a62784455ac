package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProviderFIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	if string(resp1.Content) != `"first"` {
		t.Errorf("first content = %s, want \"first\"", resp1.Content)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}
	if string(resp2.Content) != `"second"` {
		t.Errorf("second content = %s, want \"second\"", resp2.Content)
	}

	// Exhausted queue returns ErrProviderUnavailable.
	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("exhausted Generate() error = %v, want ErrProviderUnavailable", err)
	}
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	req := Request{
		System:   "you are a tutor",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount() = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].System != "you are a tutor" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
	if len(mock.Calls[0].Messages) != 1 || mock.Calls[0].Messages[0].Content != "hello" {
		t.Errorf("recorded messages = %+v", mock.Calls[0].Messages)
	}
}

func TestMockProviderCannedError(t *testing.T) {
	wantErr := &ErrRateLimit{Err: errors.New("too fast")}
	mock := NewMockProvider(MockResponse{Err: wantErr})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("Generate() error = %v, want ErrRateLimit", err)
	}
}
