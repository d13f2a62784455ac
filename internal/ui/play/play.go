// Package play renders an interactive terminal quiz session.
package play

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quillium/quillium/internal/quizgen"
	"github.com/quillium/quillium/internal/ui/components"
	"github.com/quillium/quillium/internal/ui/theme"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseDone
)

// Model walks the user through a list of questions one at a time.
type Model struct {
	mcqs     []quizgen.MCQ
	index    int
	choice   components.MultiChoice
	progress progress.Model
	phase    phase
	correct  int
	width    int
}

// New creates a quiz session model for the given questions.
func New(mcqs []quizgen.MCQ) Model {
	m := Model{
		mcqs:     mcqs,
		progress: progress.New(progress.WithColors(lipgloss.Color("#6366F1"), lipgloss.Color("#0EA5E9")), progress.WithScaled(true)),
	}
	if len(mcqs) > 0 {
		m.choice = newChoice(mcqs[0])
	} else {
		m.phase = phaseDone
	}
	return m
}

func newChoice(mcq quizgen.MCQ) components.MultiChoice {
	correctIndex := 0
	for i, opt := range mcq.Options {
		if opt == mcq.Answer {
			correctIndex = i
			break
		}
	}
	return components.NewMultiChoice(mcq.Question, mcq.Options, correctIndex)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

		switch m.phase {
		case phaseAnswering:
			var cmd tea.Cmd
			m.choice, cmd = m.choice.Update(msg)
			if m.choice.Submitted {
				if m.choice.IsCorrect() {
					m.correct++
				}
				m.phase = phaseFeedback
			}
			return m, cmd

		case phaseFeedback:
			if msg.String() == "enter" {
				m.index++
				if m.index >= len(m.mcqs) {
					m.phase = phaseDone
				} else {
					m.choice = newChoice(m.mcqs[m.index])
					m.phase = phaseAnswering
				}
			}
			return m, nil

		case phaseDone:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")

	if m.phase == phaseDone {
		v.SetContent(m.summaryView())
		return v
	}

	mcq := m.mcqs[m.index]

	header := theme.Hint.Render(fmt.Sprintf("Question %d of %d  [%s]", m.index+1, len(m.mcqs), mcq.Difficulty))
	bar := m.progress.ViewAs(float64(m.index) / float64(len(m.mcqs)))

	body := m.choice.View()

	footer := theme.Hint.Render("up/down move  enter select  q quit")
	if m.phase == phaseFeedback {
		verdict := theme.Correct.Render("Correct!")
		if !m.choice.IsCorrect() {
			verdict = theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is: %s", mcq.Answer))
		}
		footer = verdict + "\n" + theme.Hint.Render("enter next  q quit")
	}

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, bar, "", body, footer))
	return v
}

func (m Model) summaryView() string {
	title := theme.Title.Render("Quiz complete!")
	score := theme.Body.Render(fmt.Sprintf("Score: %d / %d", m.correct, len(m.mcqs)))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", score, "", theme.Hint.Render("press any key to exit"))
}

// Run starts the quiz session and blocks until it finishes.
func Run(mcqs []quizgen.MCQ) error {
	p := tea.NewProgram(New(mcqs))
	_, err := p.Run()
	return err
}
