package server

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/quillium/quillium/internal/flashcard"
	"github.com/quillium/quillium/internal/pdftext"
	"github.com/quillium/quillium/internal/quizgen"
)

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Quillium API is running!",
		"version": Version,
		"endpoints": fiber.Map{
			"POST /process-pdf": "Process PDF and generate questions",
			"POST /generate":    "Generate questions from raw text",
			"GET /health":       "Check API health",
			"GET /languages":    "Get supported languages",
		},
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "healthy",
		"translator_loaded": s.quiz.TranslatorReady(),
	})
}

// handleProcessPDF accepts a PDF upload plus language and question_count
// form fields and returns questions and flashcards.
func (s *Server) handleProcessPDF(c *fiber.Ctx) error {
	language := c.FormValue("language", "English")

	questionCount := s.config.MaxQuestions
	if v := c.FormValue("question_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "question_count must be an integer")
		}
		questionCount = n
	}
	if questionCount < s.config.MinQuestions || questionCount > s.config.MaxQuestions {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Question count must be between %d and %d", s.config.MinQuestions, s.config.MaxQuestions))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file field is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be a PDF (.pdf)")
	}
	if fileHeader.Size == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
	}
	if fileHeader.Size > s.config.MaxUploadBytes {
		return fiber.NewError(fiber.StatusBadRequest, "File size must be less than 10MB")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	result, err := pdftext.Extract(data)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Could not read PDF: %v", err))
	}
	if len(result.Text) < s.config.MinExtractedChars || !result.Usable {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("PDF doesn't contain enough text. Only found %d characters.", len(result.Text)))
	}

	mcqs := s.quiz.Generate(c.Context(), quizgen.GenerateInput{
		Text:         result.Text,
		Language:     language,
		MaxQuestions: questionCount,
	})

	if len(mcqs) == 0 {
		return fiber.NewError(fiber.StatusInternalServerError,
			"Failed to generate questions from the document.")
	}

	return c.JSON(fiber.Map{
		"text":       preview(result.Text, 500),
		"page_count": result.Pages,
		"mcqs":       mcqs,
		"flashcards": flashcard.Build(mcqs),
	})
}

// generateRequest is the JSON body for direct text generation.
type generateRequest struct {
	Text          string `json:"text" validate:"required,min=50"`
	Language      string `json:"language"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
}

var validate = validator.New()

// handleGenerate produces questions from raw text, bypassing PDF
// extraction. Useful for testing and non-PDF sources.
func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.Language == "" {
		req.Language = "English"
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = 5
	}

	mcqs := s.quiz.Generate(c.Context(), quizgen.GenerateInput{
		Text:         req.Text,
		Language:     req.Language,
		MaxQuestions: req.QuestionCount,
	})

	return c.JSON(fiber.Map{
		"text_preview":   preview(req.Text, 200),
		"language":       req.Language,
		"question_count": len(mcqs),
		"mcqs":           mcqs,
	})
}

// preview truncates text for response payloads. The cut lands on a rune
// boundary so multi-byte text stays valid UTF-8.
func preview(text string, limit int) string {
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + "..."
		}
		count++
	}
	return text
}
