package cli

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/intelligence"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// answerMsg carries a study-partner result back to the view that asked.
type answerMsg struct {
	seq    int64
	answer intelligence.Answer
}

// askSeq numbers study requests across all detail views, so an answer
// arriving after its view was popped never matches a newer view.
var askSeq atomic.Int64

// splitMinWidth is the terminal width from which the study panel sits
// beside the day page instead of below it.
const splitMinWidth = 110

// detailView shows one day with an editable checklist and the study panel.
type detailView struct {
	state *SharedState
	day   int
	unit  domain.Unit

	cursor int // selected checklist item
	adding bool
	input  textinput.Model
	vp     viewport.Model

	spinner spinner.Model
	pending bool
	seq     int64 // id of the latest study request; older answers are dropped
	cancel  context.CancelFunc
	answer  *intelligence.Answer
	reveal  bool
	ready   bool // a credential is saved
}

func newDetailView(state *SharedState, day int) *detailView {
	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Placeholder = "new checklist item"
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	v := &detailView{
		state:   state,
		day:     day,
		input:   ti,
		spinner: sp,
		vp:      viewport.New(0, 0),
	}
	v.reload()
	return v
}

func (v *detailView) ID() ViewID { return ViewDetail }

func (v *detailView) Title() string { return formatter.DayLabel(v.day) }

func (v *detailView) ShortHelp() []key.Binding {
	hints := []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Status, keys.Explain, keys.Quiz}
	if v.unit.Phase.IsAutomationTrack() {
		hints = append(hints, keys.Code)
	}
	hints = append(hints, keys.Task)
	if v.answer != nil && v.answer.State == intelligence.AnswerQuiz {
		hints = append(hints, keys.Reveal)
	}
	return hints
}

func (v *detailView) CapturesInput() bool { return v.adding }

func (v *detailView) Init() tea.Cmd { return nil }

// Close abandons any in-flight study request.
func (v *detailView) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *detailView) reload() {
	u, err := v.state.App.Roadmap.Get(v.day)
	if err != nil {
		return
	}
	v.unit = u
	v.ready = v.state.App.Partner != nil && v.state.App.Partner.Ready(context.Background())
	if v.cursor >= len(u.Checklist) {
		v.cursor = max(len(u.Checklist)-1, 0)
	}
	v.refreshContent()
}

func (v *detailView) selectedItem() (domain.ChecklistItem, bool) {
	if v.cursor < 0 || v.cursor >= len(v.unit.Checklist) {
		return domain.ChecklistItem{}, false
	}
	return v.unit.Checklist[v.cursor], true
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case tea.WindowSizeMsg:
		v.refreshContent()
		return v, nil

	case answerMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.pending = false
		v.cancel = nil
		a := msg.answer
		v.answer = &a
		v.reveal = false
		v.refreshContent()
		return v, nil

	case spinner.TickMsg:
		if !v.pending {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		v.refreshContent()
		return v, cmd

	case tea.KeyMsg:
		if v.adding {
			return v.updateAdd(msg)
		}
		return v.handleKey(msg)
	}

	if v.adding {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *detailView) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.adding = false
		v.input.Blur()
		v.input.SetValue("")
		v.refreshContent()
		return v, nil
	case tea.KeyEnter:
		text := v.input.Value()
		v.adding = false
		v.input.Blur()
		v.input.SetValue("")
		_, added, err := v.state.App.Roadmap.AddItem(context.Background(), v.day, text)
		v.state.noteSave(err)
		v.reload()
		if added {
			v.cursor = len(v.unit.Checklist) - 1
			v.refreshContent()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.refreshContent()
	return v, cmd
}

func (v *detailView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	app := v.state.App

	switch {
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.refreshContent()
		}
	case key.Matches(msg, keys.Down):
		if v.cursor < len(v.unit.Checklist)-1 {
			v.cursor++
			v.refreshContent()
		}
	case key.Matches(msg, keys.Toggle):
		if item, ok := v.selectedItem(); ok {
			_, err := app.Roadmap.ToggleItem(ctx, v.day, item.ID)
			v.state.noteSave(err)
			v.reload()
		}
	case key.Matches(msg, keys.Add):
		v.adding = true
		v.refreshContent()
		return v, v.input.Focus()
	case key.Matches(msg, keys.Delete):
		if item, ok := v.selectedItem(); ok {
			_, err := app.Roadmap.RemoveItem(ctx, v.day, item.ID)
			v.state.noteSave(err)
			v.reload()
		}
	case key.Matches(msg, keys.Status):
		_, err := app.Roadmap.SetStatus(ctx, v.day, v.unit.Status.Next())
		v.state.noteSave(err)
		v.reload()
	case key.Matches(msg, keys.Explain):
		return v, v.ask(intelligence.ActionExplain, "")
	case key.Matches(msg, keys.Quiz):
		return v, v.ask(intelligence.ActionQuiz, "")
	case key.Matches(msg, keys.Code):
		if v.unit.Phase.IsAutomationTrack() {
			return v, v.ask(intelligence.ActionCode, "")
		}
	case key.Matches(msg, keys.Task):
		if item, ok := v.selectedItem(); ok {
			return v, v.ask(intelligence.ActionExplainTask, item.ID)
		}
	case key.Matches(msg, keys.Reveal):
		if v.answer != nil && v.answer.State == intelligence.AnswerQuiz {
			v.reveal = !v.reveal
			v.refreshContent()
		}
	default:
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

// ask starts a study request. A newer request supersedes any pending one:
// the old context is cancelled and its answer is ignored on arrival.
func (v *detailView) ask(action intelligence.Action, itemID string) tea.Cmd {
	if v.state.App.Partner == nil {
		return nil
	}
	v.Close()
	v.seq = askSeq.Add(1)
	v.pending = true
	v.answer = nil
	v.refreshContent()

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	seq := v.seq
	unit := v.unit
	run := v.state.App.askAction(action, itemID)

	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg {
			return answerMsg{seq: seq, answer: run(ctx, unit)}
		},
	)
}

// refreshContent re-renders the page into the viewport.
func (v *detailView) refreshContent() {
	width := max(v.state.Width, 40)
	v.vp.Width = width
	v.vp.Height = v.state.ContentHeight()

	page := formatter.FormatUnitDetailSelected(v.unit, v.cursor)
	if v.adding {
		page += "\n" + v.input.View() + "\n"
	}

	if width >= splitMinWidth {
		left := lipgloss.NewStyle().Width(width / 2).Render(page)
		right := lipgloss.NewStyle().Width(width/2 - 2).PaddingLeft(2).Render(v.renderPanel(width/2 - 4))
		v.vp.SetContent(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
		return
	}
	v.vp.SetContent(page + "\n" + v.renderPanel(width-2))
}

func (v *detailView) renderPanel(width int) string {
	switch {
	case v.pending:
		return formatter.Header("Study partner") + "\n\n" + v.spinner.View() + " " + formatter.Dim("Thinking...")
	case v.answer != nil:
		return formatter.FormatAnswer(*v.answer, v.reveal, width)
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Study partner") + "\n\n")
	if !v.ready {
		b.WriteString(formatter.StyleYellow.Render("No API key saved. Run `roadmap key set`.") + "\n\n")
	}
	b.WriteString(formatter.Dim("e: explain the topic") + "\n")
	b.WriteString(formatter.Dim("z: three mock exam questions") + "\n")
	if v.unit.Phase.IsAutomationTrack() {
		b.WriteString(formatter.Dim("c: Playwright code example") + "\n")
	}
	b.WriteString(formatter.Dim(fmt.Sprintf("t: explain the selected task (%d items)", len(v.unit.Checklist))) + "\n")
	return b.String()
}

func (v *detailView) View() string {
	return v.vp.View()
}
