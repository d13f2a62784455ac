package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quillium/quillium/internal/flashcard"
	"github.com/quillium/quillium/internal/llm"
	"github.com/quillium/quillium/internal/pdftext"
	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/store"
	"github.com/quillium/quillium/internal/translate"
)

// quizPayload is the JSON stored in a quiz record and printed by generate.
type quizPayload struct {
	MCQs       []quizgen.MCQ         `json:"mcqs"`
	Flashcards []flashcard.Flashcard `json:"flashcards"`
}

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a quiz from a PDF or text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		language, _ := cmd.Flags().GetString("language")
		count, _ := cmd.Flags().GetInt("count")
		output, _ := cmd.Flags().GetString("output")

		text, err := readSourceText(args[0])
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Using fallback generation.")
		}

		trProvider, err := llm.NewTranslationProviderFromEnv(ctx, st.EventRepo(), provider)
		if err != nil {
			trProvider = provider
		}

		log := logrus.New()
		log.SetOutput(os.Stderr)
		translator := translate.New(trProvider, translate.DefaultConfig())
		service := quizgen.New(provider, translator, quizgen.DefaultConfig(), log)

		mcqs := service.Generate(ctx, quizgen.GenerateInput{
			Text:         text,
			Language:     language,
			MaxQuestions: count,
		})
		if len(mcqs) == 0 {
			return fmt.Errorf("no questions could be generated from %s", args[0])
		}

		cards := flashcard.Build(mcqs)
		if language != "" && language != "English" {
			cards = flashcard.Translate(ctx, translator, cards, language)
		}

		payload := quizPayload{MCQs: mcqs, Flashcards: cards}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}

		rec := &store.QuizRecord{
			SourceName:    filepath.Base(args[0]),
			Language:      language,
			QuestionCount: len(mcqs),
			Payload:       data,
		}
		if err := st.QuizRepo().SaveQuiz(ctx, rec); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		if output != "" {
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		} else {
			fmt.Println(string(data))
		}

		fmt.Fprintf(os.Stderr, "\nSaved quiz %s (%d questions). Run `quillium play %s` to practice.\n",
			rec.ID, len(mcqs), rec.ID)
		return nil
	},
}

// readSourceText loads the input file, extracting text when it is a PDF.
func readSourceText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		result, err := pdftext.ExtractFile(path)
		if err != nil {
			return "", fmt.Errorf("extract PDF text: %w", err)
		}
		if !result.Usable {
			return "", fmt.Errorf("%s contains too little text to generate questions", filepath.Base(path))
		}
		return result.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func init() {
	generateCmd.Flags().StringP("language", "l", "English", "Output language for questions and flashcards")
	generateCmd.Flags().IntP("count", "c", 5, "Maximum number of questions")
	generateCmd.Flags().StringP("output", "o", "", "Write the quiz JSON to a file instead of stdout")
}
