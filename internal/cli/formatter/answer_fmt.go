package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/intelligence"
	"github.com/alexanderramin/roadmap/internal/llm"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders model output for the terminal, wrapped at width.
// Rendering failures fall back to the raw text.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// FormatQuiz renders questions with lettered options. Answers are shown
// only when reveal is set.
func FormatQuiz(qs []llm.QuizQuestion, reveal bool) string {
	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Bold(fmt.Sprintf("%d. %s", i+1, q.Question)) + "\n")
		for j, opt := range q.Options {
			b.WriteString(fmt.Sprintf("   %s %s\n", StylePurple.Render(string(rune('A'+j))+")"), opt))
		}
		if reveal {
			answer := q.Answer
			if idx := q.AnswerIndex(); idx >= 0 {
				answer += " (" + string(rune('A'+idx)) + ")"
			}
			b.WriteString("   " + StyleGreen.Render("Correct Answer:") + " " + answer + "\n")
		}
	}
	return b.String()
}

// FormatAnswer renders a study-partner answer under its heading.
func FormatAnswer(a intelligence.Answer, reveal bool, width int) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(strings.ToUpper(a.Action.Label())) + "\n\n")

	switch a.State {
	case intelligence.AnswerQuiz:
		b.WriteString(FormatQuiz(a.Quiz, reveal))
		if !reveal {
			b.WriteString("\n" + Dim("Answers hidden: pass --reveal, or press r in the dashboard.") + "\n")
		}
	case intelligence.AnswerQuizParseFailed:
		b.WriteString(StyleYellow.Render(a.Text) + "\n")
	case intelligence.AnswerError:
		b.WriteString(StyleRed.Render("Error: ") + a.Text + "\n")
		if a.Hint != "" {
			b.WriteString(Dim(a.Hint) + "\n")
		}
	default:
		b.WriteString(RenderMarkdown(a.Text, width))
	}
	return b.String()
}
