// Package pdftext extracts plain text from PDF documents for downstream
// question generation.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MinTextLength is the minimum number of cleaned characters required for
// the extraction to count as usable text.
const MinTextLength = 50

// MinimalTextMessage replaces the extracted text when a document yields
// fewer than MinTextLength characters.
const MinimalTextMessage = "This document contains minimal text. Please try a document with more content."

// Result holds the outcome of a PDF extraction.
type Result struct {
	// Text is the cleaned extracted text, or MinimalTextMessage when the
	// document held too little.
	Text string

	// Pages is the page count of the document.
	Pages int

	// Usable reports whether Text is real document content rather than
	// the minimal-text placeholder.
	Usable bool
}

// Extract pulls readable text out of raw PDF bytes.
func Extract(data []byte) (*Result, error) {
	tmp, err := os.CreateTemp("", "quillium_*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return ExtractFile(tmp.Name())
}

// ExtractFile pulls readable text out of a PDF on disk.
func ExtractFile(path string) (*Result, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page count: %w", err)
	}

	var parts []string
	for page := 1; page <= pages; page++ {
		content, err := extractPageContent(path, page, conf)
		if err != nil {
			// A single broken page does not invalidate the document.
			continue
		}
		if text := textFromContentStream(content); text != "" {
			parts = append(parts, text)
		}
	}

	text := Clean(strings.Join(parts, " "))
	if len(strings.TrimSpace(text)) < MinTextLength {
		return &Result{Text: MinimalTextMessage, Pages: pages, Usable: false}, nil
	}

	return &Result{Text: text, Pages: pages, Usable: true}, nil
}

// extractPageContent runs pdfcpu's content extraction for one page and
// returns the raw content stream text.
func extractPageContent(path string, page int, conf *model.Configuration) (string, error) {
	tempDir, err := os.MkdirTemp("", "quillium_content_*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := api.ExtractContentFile(path, tempDir, []string{strconv.Itoa(page)}, conf); err != nil {
		return "", fmt.Errorf("extract content for page %d: %w", page, err)
	}

	baseName := strings.TrimSuffix(filepath.Base(path), ".pdf")
	contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", baseName, page))

	contentBytes, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("read content file: %w", err)
	}

	return string(contentBytes), nil
}
