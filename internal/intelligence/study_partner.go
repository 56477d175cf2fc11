package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/llm"
	"go.uber.org/zap"
)

// QuizParseFailedText is shown in place of a quiz the model answered with
// unusable JSON.
const QuizParseFailedText = "Error generating interactive quiz. Try again."

var (
	// ErrCodeExampleUnavailable is returned for code examples outside the
	// automation track.
	ErrCodeExampleUnavailable = errors.New("code examples are only available for automation and project days")

	// ErrUnknownItem is returned when a task explanation names an item the
	// unit does not have.
	ErrUnknownItem = errors.New("unknown checklist item")
)

// Action is one study-partner request kind.
type Action string

const (
	ActionExplain     Action = "explain"
	ActionQuiz        Action = "quiz"
	ActionCode        Action = "code"
	ActionExplainTask Action = "explain_task"
)

// Label is the heading shown above an answer.
func (a Action) Label() string {
	switch a {
	case ActionQuiz:
		return "Mock Questions"
	case ActionCode:
		return "Code Snippet"
	case ActionExplainTask:
		return "Task Explanation"
	default:
		return "Explanation"
	}
}

// AnswerState tells the presentation layer how to render an Answer.
type AnswerState int

const (
	AnswerText AnswerState = iota
	AnswerQuiz
	AnswerQuizParseFailed
	AnswerError
)

// Answer is the result of a study-partner request. Err and Hint are set only
// in AnswerError.
type Answer struct {
	Action Action
	Day    int
	ItemID string
	Text   string
	Quiz   []llm.QuizQuestion
	State  AnswerState
	Err    error
	Hint   string
}

// CredentialSource supplies the stored API key; empty means none saved.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// StudyPartner turns unit content into prompts and generation results into
// renderable answers.
type StudyPartner struct {
	gen   llm.Generator
	creds CredentialSource
	log   *zap.Logger
}

// NewStudyPartner creates a StudyPartner. A nil logger discards output.
func NewStudyPartner(gen llm.Generator, creds CredentialSource, log *zap.Logger) *StudyPartner {
	if log == nil {
		log = zap.NewNop()
	}
	return &StudyPartner{gen: gen, creds: creds, log: log.Named("study")}
}

// Explain asks for a beginner-level explanation of the unit's topic.
func (p *StudyPartner) Explain(ctx context.Context, u domain.Unit) Answer {
	return p.ask(ctx, Answer{Action: ActionExplain, Day: u.Index}, ExplainPrompt(u.Title), llm.ModeText)
}

// Quiz asks for three multiple-choice questions on the unit's topic.
func (p *StudyPartner) Quiz(ctx context.Context, u domain.Unit) Answer {
	return p.ask(ctx, Answer{Action: ActionQuiz, Day: u.Index}, QuizPrompt(u.Title), llm.ModeQuiz)
}

// CodeExample asks for a Playwright script. Only automation-track units
// offer it.
func (p *StudyPartner) CodeExample(ctx context.Context, u domain.Unit) Answer {
	a := Answer{Action: ActionCode, Day: u.Index}
	if !u.Phase.IsAutomationTrack() {
		return failed(a, ErrCodeExampleUnavailable)
	}
	return p.ask(ctx, a, CodePrompt(u.Title), llm.ModeText)
}

// ExplainTask asks how to complete one checklist item of the unit.
func (p *StudyPartner) ExplainTask(ctx context.Context, u domain.Unit, itemID string) Answer {
	a := Answer{Action: ActionExplainTask, Day: u.Index, ItemID: itemID}
	i := u.ItemIndex(itemID)
	if i < 0 {
		return failed(a, fmt.Errorf("%w %q on day %d", ErrUnknownItem, itemID, u.Index))
	}
	return p.ask(ctx, a, ExplainTaskPrompt(u.Title, u.Checklist[i].Text), llm.ModeText)
}

func (p *StudyPartner) ask(ctx context.Context, a Answer, prompt string, mode llm.Mode) Answer {
	cred, err := p.creds.Credential(ctx)
	if err != nil {
		return failed(a, fmt.Errorf("reading API key: %w", err))
	}

	resp, err := p.gen.Generate(ctx, llm.GenerateRequest{
		Prompt:     prompt,
		Credential: cred,
		Mode:       mode,
	})
	switch {
	case errors.Is(err, llm.ErrQuizParse):
		p.log.Warn("quiz_parse_failed", zap.Int("day", a.Day), zap.Error(err))
		a.State = AnswerQuizParseFailed
		a.Text = QuizParseFailedText
		return a
	case err != nil:
		return failed(a, err)
	}

	a.Text = resp.Text
	if mode == llm.ModeQuiz {
		a.State = AnswerQuiz
		a.Quiz = resp.Quiz
		return a
	}
	a.State = AnswerText
	return a
}

func failed(a Answer, err error) Answer {
	a.State = AnswerError
	a.Err = err
	a.Text = err.Error()
	a.Hint = Hint(err)
	return a
}

// Hint suggests what the user can do about err.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCodeExampleUnavailable), errors.Is(err, ErrUnknownItem):
		return ""
	}
	switch llm.Classify(err) {
	case llm.ClassMissingCredential:
		return "Save your Gemini API key with `roadmap key set`."
	case llm.ClassPermissionDenied:
		return "The saved API key was rejected. Check that it is valid and has no API or referrer restrictions."
	case llm.ClassRateLimited:
		return "The API is rate limiting this key. Wait a minute and try again."
	case llm.ClassCanceled:
		return ""
	default:
		return "Check that your API key is saved (`roadmap key show`) and that you are online."
	}
}

// Ready reports whether a request could be sent, without sending one.
func (p *StudyPartner) Ready(ctx context.Context) bool {
	cred, err := p.creds.Credential(ctx)
	return err == nil && strings.TrimSpace(cred) != ""
}
