package pdftext

import (
	"slices"
	"strconv"
	"strings"
)

// textFromContentStream turns a raw PDF content stream into readable text.
// It first looks for text show operations (Tj, TJ and the quote forms);
// when a page has none, it falls back to scanning for lines that look like
// prose rather than operators.
func textFromContentStream(content string) string {
	if content == "" {
		return ""
	}

	texts := textShowStrings(content)
	if len(texts) == 0 {
		return readableLines(content)
	}

	return processEscapes(strings.Join(texts, " "))
}

// textShowStrings collects the string operands of text show operations.
func textShowStrings(content string) []string {
	var texts []string

	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, " Tj") || strings.Contains(line, " TJ") ||
			strings.Contains(line, "' ") || strings.Contains(line, "\" ") {
			texts = append(texts, parenOperands(line)...)
		}
	}

	return texts
}

// parenOperands extracts every (...)-delimited string from a content
// stream line, handling escaped parentheses.
func parenOperands(line string) []string {
	var texts []string
	inText := false
	start := -1

	for i, char := range line {
		if char == '(' && (i == 0 || line[i-1] != '\\') {
			inText = true
			start = i + 1
		} else if char == ')' && inText && (i == 0 || line[i-1] != '\\') {
			if start != -1 && start < i {
				text := line[start:i]
				text = strings.ReplaceAll(text, "\\(", "(")
				text = strings.ReplaceAll(text, "\\)", ")")
				text = strings.ReplaceAll(text, "\\\\", "\\")

				if strings.TrimSpace(text) != "" {
					texts = append(texts, text)
				}
			}
			inText = false
			start = -1
		}
	}

	return texts
}

// readableLines keeps content stream lines that look like prose.
func readableLines(content string) string {
	var kept []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isOperatorLine(line) {
			continue
		}
		if isReadable(line) {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, " ")
}

// pdfOperators are content stream operators that mark a line as
// drawing instructions rather than text.
var pdfOperators = []string{
	"BT", "ET", "Tf", "Td", "TD", "Tm", "T*", "Tj", "TJ", "'", "\"",
	"q", "Q", "cm", "w", "J", "j", "M", "d", "ri", "i", "gs",
	"CS", "cs", "SC", "SCN", "sc", "scn", "G", "g", "RG", "rg", "K", "k",
	"m", "l", "c", "v", "y", "h", "re", "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n",
	"W", "W*", "BX", "EX", "MP", "DP", "BMC", "BDC", "EMC",
}

func isOperatorLine(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}

	if slices.Contains(pdfOperators, words[len(words)-1]) {
		return true
	}

	// Lines that are mostly numbers are coordinates.
	nonNumeric := 0
	for _, word := range words {
		if _, err := strconv.ParseFloat(word, 64); err != nil {
			nonNumeric++
		}
	}
	return float64(nonNumeric)/float64(len(words)) < 0.3
}

func isReadable(line string) bool {
	if len(line) < 2 {
		return false
	}

	alpha := 0
	for _, char := range line {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
			alpha++
		}
	}
	return float64(alpha)/float64(len(line)) >= 0.3
}

// octalReplacements maps common PDF octal escapes to their characters.
var octalReplacements = map[string]string{
	"\\037": "",
	"\\260": "°",
	"\\256": "®",
	"\\251": "©",
	"\\231": "'",
	"\\221": "'",
	"\\223": "\"",
	"\\224": "\"",
	"\\226": "-",
	"\\227": "-",
	"\\240": " ",
	"\\012": "\n",
	"\\015": "\r",
	"\\011": "\t",
}

// processEscapes resolves octal escape sequences and drops control
// characters left over from the content stream.
func processEscapes(text string) string {
	text = strings.ReplaceAll(text, "\\n", "\n")
	text = strings.ReplaceAll(text, "\\r", "\r")
	text = strings.ReplaceAll(text, "\\t", "\t")

	for octal, replacement := range octalReplacements {
		text = strings.ReplaceAll(text, octal, replacement)
	}

	// Drop unrecognized 3-digit octal escapes.
	var b strings.Builder
	i := 0
	for i < len(text) {
		if i+3 < len(text) && text[i] == '\\' &&
			text[i+1] >= '0' && text[i+1] <= '7' &&
			text[i+2] >= '0' && text[i+2] <= '7' &&
			text[i+3] >= '0' && text[i+3] <= '7' {
			i += 4
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	text = b.String()

	// Control characters become spaces.
	var out strings.Builder
	for _, char := range text {
		switch {
		case char == '\n' || char == '\r' || char == '\t':
			out.WriteRune(char)
		case char < 32:
			out.WriteRune(' ')
		default:
			out.WriteRune(char)
		}
	}
	return out.String()
}
