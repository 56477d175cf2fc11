package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLayout selects how the dashboard renders the filtered units.
type dashboardLayout int

const (
	layoutTable dashboardLayout = iota
	layoutBoard
)

// dashboardView is the home screen: the filtered roadmap as a table or a
// status board, with search and filter controls.
type dashboardView struct {
	state *SharedState

	units  []domain.Unit // current filtered view
	cursor int
	offset int // first visible table row

	layout    dashboardLayout
	filter    domain.FilterMode
	search    textinput.Model
	searching bool
}

func newDashboardView(state *SharedState) *dashboardView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search titles"
	ti.CharLimit = 80

	v := &dashboardView{
		state:  state,
		filter: domain.FilterAll,
		search: ti,
	}
	v.reload()
	return v
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{keys.Open, keys.ToggleView, keys.Search, keys.Filter}
}

func (v *dashboardView) CapturesInput() bool { return v.searching }

func (v *dashboardView) Init() tea.Cmd { return nil }

// reload recomputes the filtered view and keeps the cursor in range.
func (v *dashboardView) reload() {
	v.units = v.state.App.Roadmap.FilteredView(v.search.Value(), v.filter)
	if v.cursor >= len(v.units) {
		v.cursor = max(len(v.units)-1, 0)
	}
	v.clampOffset()
}

func (v *dashboardView) visibleRows() int {
	// Title row, filter line, blank line, table header and rule.
	return max(v.state.ContentHeight()-6, 3)
}

func (v *dashboardView) clampOffset() {
	rows := v.visibleRows()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *dashboardView) selected() (domain.Unit, bool) {
	if v.cursor < 0 || v.cursor >= len(v.units) {
		return domain.Unit{}, false
	}
	return v.units[v.cursor], true
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg, tea.WindowSizeMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *dashboardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.reload()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.reload()
	return v, cmd
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.clampOffset()
		}
	case key.Matches(msg, keys.Down):
		if v.cursor < len(v.units)-1 {
			v.cursor++
			v.clampOffset()
		}
	case key.Matches(msg, keys.Open):
		if u, ok := v.selected(); ok {
			return v, pushView(newDetailView(v.state, u.Index))
		}
	case key.Matches(msg, keys.ToggleView):
		if v.layout == layoutTable {
			v.layout = layoutBoard
		} else {
			v.layout = layoutTable
		}
	case key.Matches(msg, keys.Search):
		v.searching = true
		return v, v.search.Focus()
	case key.Matches(msg, keys.Filter):
		v.filter = v.filter.Next()
		v.cursor = 0
		v.reload()
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder

	stats := v.state.App.Roadmap.Stats()
	b.WriteString(formatter.Header("60-Day QA Roadmap") + "  " +
		formatter.RenderProgress(stats.ProgressPct, 20) + "  " +
		formatter.Dim(fmt.Sprintf("ISTQB %d%%", stats.CertCoveragePct)) + "\n")

	filterLine := formatter.Dim("filter: ") + formatter.StyleBlue.Render(v.filter.Label())
	if v.searching || v.search.Value() != "" {
		filterLine += "  " + v.search.View()
	}
	b.WriteString(filterLine + "\n\n")

	if len(v.units) == 0 {
		b.WriteString(formatter.FormatUnitList(nil))
		return b.String()
	}

	if v.layout == layoutBoard {
		b.WriteString(formatter.FormatBoard(v.state.App.Roadmap.GroupedByStatus(v.search.Value(), v.filter)))
		if u, ok := v.selected(); ok {
			b.WriteString("\n" + formatter.Dim("selected: ") + formatter.DayLabel(u.Index) + " " + u.Title + "\n")
		}
		return b.String()
	}

	end := min(v.offset+v.visibleRows(), len(v.units))
	rows := formatter.UnitRows(v.units[v.offset:end])
	b.WriteString(formatter.RenderSelectableTable(formatter.UnitHeaders, rows, v.cursor-v.offset))
	if len(v.units) > end-v.offset {
		b.WriteString(formatter.Dim(fmt.Sprintf("%d-%d of %d", v.offset+1, end, len(v.units))) + "\n")
	}
	return b.String()
}
