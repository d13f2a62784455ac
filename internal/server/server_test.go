package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/quillium/quillium/internal/config"
	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/translate"
)

func testServer(provider llm.Provider) *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)

	quiz := quizgen.New(provider, translate.New(nil, translate.DefaultConfig()), quizgen.DefaultConfig(), log)

	cfg := config.Config{
		Addr:              ":0",
		AllowedOrigins:    "*",
		MaxUploadBytes:    10 * 1024 * 1024,
		MinQuestions:      5,
		MaxQuestions:      20,
		MinExtractedChars: 100,
	}
	return New(quiz, cfg, log)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}

	var parsed map[string]any
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("parse response %s: %v", data, err)
		}
	}
	return resp, parsed
}

func TestRootEndpoint(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	resp, body := doJSON(t, s, "GET", "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["message"] != "Quillium API is running!" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["endpoints"]; !ok {
		t.Error("response missing endpoints map")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	resp, body := doJSON(t, s, "GET", "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
	if _, ok := body["translator_loaded"]; !ok {
		t.Error("response missing translator_loaded")
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	resp, body := doJSON(t, s, "GET", "/languages", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	european, ok := body["European Languages"].([]any)
	if !ok || len(european) == 0 {
		t.Errorf("European Languages group missing: %v", body)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	raws := []quizgen.RawMCQ{
		{Question: "Q?", Answer: "A", Options: []string{"A", "B", "C", "D"}, Difficulty: "easy"},
	}
	payload, _ := json.Marshal(raws)
	s := testServer(llm.NewMockProvider(llm.MockResponse{Content: payload}))

	resp, body := doJSON(t, s, "POST", "/generate", map[string]any{
		"text":           strings.Repeat("The water cycle moves water around the planet. ", 5),
		"language":       "English",
		"question_count": 5,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %v", resp.StatusCode, body)
	}
	if body["question_count"].(float64) != 1 {
		t.Errorf("question_count = %v, want 1", body["question_count"])
	}
	mcqs := body["mcqs"].([]any)
	if len(mcqs) != 1 {
		t.Errorf("mcqs length = %d, want 1", len(mcqs))
	}
}

func TestGenerateEndpointRejectsShortText(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	resp, _ := doJSON(t, s, "POST", "/generate", map[string]any{
		"text": "too short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGenerateEndpointRejectsBadBody(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := httptest.NewRequest("POST", "/generate", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func multipartPDFRequest(t *testing.T, filename string, contents []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(contents); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/process-pdf", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestProcessPDFRejectsBadQuestionCount(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := multipartPDFRequest(t, "notes.pdf", []byte("%PDF-1.4"), map[string]string{"question_count": "3"})
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcessPDFRejectsNonPDF(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := multipartPDFRequest(t, "notes.txt", []byte("hello"), nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcessPDFRejectsEmptyFile(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := multipartPDFRequest(t, "notes.pdf", nil, nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcessPDFRejectsMissingFile(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := multipartPDFRequest(t, "", nil, map[string]string{"language": "English"})
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProcessPDFRejectsUnreadablePDF(t *testing.T) {
	s := testServer(llm.NewMockProvider())

	req := multipartPDFRequest(t, "notes.pdf", []byte("this is not a real pdf"), nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPreviewCutsOnRuneBoundary(t *testing.T) {
	short := "brief"
	if got := preview(short, 200); got != short {
		t.Errorf("preview(short) = %q, want unchanged", got)
	}

	// A multi-byte rune sits exactly at the limit.
	long := strings.Repeat("a", 199) + "é plus a tail beyond the limit"
	got := preview(long, 200)

	if !utf8.ValidString(got) {
		t.Errorf("preview %q is not valid UTF-8", got)
	}
	if !strings.HasSuffix(got, "é...") {
		t.Errorf("preview %q should keep the full rune at the limit", got)
	}
	if n := utf8.RuneCountInString(got); n != 203 {
		t.Errorf("preview rune count = %d, want 200 plus ellipsis", n)
	}
}
