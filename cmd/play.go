package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillium/quillium/internal/store"
	"github.com/quillium/quillium/internal/ui/play"
)

var playCmd = &cobra.Command{
	Use:   "play [quiz-id|file.json]",
	Short: "Practice a saved quiz in the terminal",
	Long:  "Practice a quiz in the terminal. Takes a stored quiz id or a JSON file produced by generate; with no argument the most recently generated quiz is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			name string
		)

		if len(args) == 1 && strings.EqualFold(filepath.Ext(args[0]), ".json") {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read quiz file: %w", err)
			}
			data, name = b, args[0]
		} else {
			rec, err := loadStoredQuiz(cmd, args)
			if err != nil {
				return err
			}
			data, name = rec.Payload, rec.ID
		}

		var payload quizPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode quiz %s: %w", name, err)
		}
		if len(payload.MCQs) == 0 {
			return fmt.Errorf("quiz %s has no questions", name)
		}

		return play.Run(payload.MCQs)
	},
}

// loadStoredQuiz fetches a quiz record by id, or the most recent one when
// no argument is given.
func loadStoredQuiz(cmd *cobra.Command, args []string) (*store.QuizRecord, error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if len(args) == 1 {
		rec, err := st.QuizRepo().GetQuiz(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("load quiz %s: %w", args[0], err)
		}
		return rec, nil
	}

	recent, err := st.QuizRepo().ListQuizzes(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if len(recent) == 0 {
		return nil, fmt.Errorf("no saved quizzes yet, run `quillium generate` first")
	}
	return &recent[0], nil
}
