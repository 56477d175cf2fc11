package cli

import (
	"context"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/intelligence"
)

// StudyPartner is the AI panel as seen by commands and views.
type StudyPartner interface {
	Explain(ctx context.Context, u domain.Unit) intelligence.Answer
	Quiz(ctx context.Context, u domain.Unit) intelligence.Answer
	CodeExample(ctx context.Context, u domain.Unit) intelligence.Answer
	ExplainTask(ctx context.Context, u domain.Unit, itemID string) intelligence.Answer
	Ready(ctx context.Context) bool
}

// askFunc runs one study-partner action for a unit.
type askFunc func(ctx context.Context, u domain.Unit) intelligence.Answer

func (a *App) askAction(action intelligence.Action, itemID string) askFunc {
	switch action {
	case intelligence.ActionQuiz:
		return a.Partner.Quiz
	case intelligence.ActionCode:
		return a.Partner.CodeExample
	case intelligence.ActionExplainTask:
		return func(ctx context.Context, u domain.Unit) intelligence.Answer {
			return a.Partner.ExplainTask(ctx, u, itemID)
		}
	default:
		return a.Partner.Explain
	}
}
