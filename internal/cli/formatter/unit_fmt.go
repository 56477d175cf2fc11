package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/roadmap"
	"github.com/charmbracelet/lipgloss"
)

const (
	listTitleWidth  = 42
	checklistBarLen = 8
	statsBarWidth   = 30
	boardCardWidth  = 30
)

// UnitRows converts units into table cells for the list view.
func UnitRows(units []domain.Unit) [][]string {
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%2d", u.Index)),
			Bold(Truncate(u.Title, listTitleWidth)),
			PhaseBadge(u.Phase),
			CertBadge(u.RequiresCertification),
			StatusPill(u.Status),
			checklistCell(u),
		})
	}
	return rows
}

// UnitHeaders are the list view column headers.
var UnitHeaders = []string{"DAY", "TITLE", "PHASE", "ISTQB", "STATUS", "CHECKLIST"}

func checklistCell(u domain.Unit) string {
	total := len(u.Checklist)
	if total == 0 {
		return Dim("--")
	}
	done := u.CompletedItems()
	return RenderCompactBar(done, total, checklistBarLen) + " " + Dim(fmt.Sprintf("%d/%d", done, total))
}

// FormatUnitList renders units as a table.
func FormatUnitList(units []domain.Unit) string {
	if len(units) == 0 {
		return Dim("No days match the current search and filter.") + "\n"
	}
	return RenderTable(UnitHeaders, UnitRows(units))
}

// FormatBoard renders the three status columns side by side.
func FormatBoard(b roadmap.Board) string {
	cols := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		cols = append(cols, boardColumn(s, b.Column(s)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n"
}

// BoardCard renders one unit as a board card line.
func BoardCard(u domain.Unit) string {
	label := Dim(fmt.Sprintf("%2d ", u.Index)) + Truncate(u.Title, boardCardWidth-7)
	if u.RequiresCertification {
		label += " " + StyleYellow.Render("◆")
	}
	return label
}

func boardColumn(s domain.Status, units []domain.Unit) string {
	var b strings.Builder
	b.WriteString(StatusColor(s).Bold(true).Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(s)), len(units))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", boardCardWidth-2)))
	for _, u := range units {
		b.WriteString("\n")
		b.WriteString(BoardCard(u))
	}
	if len(units) == 0 {
		b.WriteString("\n" + Dim("(empty)"))
	}
	return lipgloss.NewStyle().Width(boardCardWidth).PaddingRight(2).Render(b.String())
}

// FormatUnitDetail renders the full page for one day.
func FormatUnitDetail(u domain.Unit) string {
	return FormatUnitDetailSelected(u, -1)
}

// FormatUnitDetailSelected renders the day page with checklist item
// selected marked; a negative selected marks none.
func FormatUnitDetailSelected(u domain.Unit, selected int) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("DAY %d", u.Index)) + "  " + Bold(u.Title) + "\n\n")

	props := [][2]string{
		{"Status", StatusPill(u.Status)},
		{"Phase", PhaseBadge(u.Phase)},
		{"Certification", CertBadge(u.RequiresCertification)},
		{"Time spent", FormatHours(u.TimeSpentHours)},
		{"Confidence", FormatConfidence(u.ConfidenceLevel)},
	}
	for _, p := range props {
		b.WriteString("  " + Dim(fmt.Sprintf("%-14s", p[0])) + " " + p[1] + "\n")
	}

	b.WriteString("\n" + Header("Learning objectives") + "\n")
	if len(u.LearningObjectives) == 0 {
		b.WriteString(Dim("  none") + "\n")
	}
	for _, o := range u.LearningObjectives {
		b.WriteString("  • " + o + "\n")
	}

	done := u.CompletedItems()
	b.WriteString("\n" + Header(fmt.Sprintf("Checklist %d/%d", done, len(u.Checklist))) + "\n")
	if len(u.Checklist) == 0 {
		b.WriteString(Dim("  no items") + "\n")
	}
	for i, item := range u.Checklist {
		b.WriteString(checklistLine(item, i == selected) + "\n")
	}

	b.WriteString("\n" + Header("Notes") + "\n")
	if strings.TrimSpace(u.Notes) == "" {
		b.WriteString(Dim("  none") + "\n")
	} else {
		for _, line := range strings.Split(u.Notes, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	return b.String()
}

func checklistLine(item domain.ChecklistItem, selected bool) string {
	box := StyleDim.Render("[ ]")
	text := item.Text
	if item.Done {
		box = StyleGreen.Render("[x]")
		text = StyleDim.Strikethrough(true).Render(text)
	}
	prefix := "  "
	if selected {
		prefix = selectedRow.Render("›") + " "
	}
	return fmt.Sprintf("%s%s %s %s", prefix, box, text, Dim(item.ID))
}

// FormatStats renders overall and certification progress.
func FormatStats(s roadmap.Stats) string {
	var b strings.Builder
	b.WriteString(Header("Progress") + "\n")
	b.WriteString(fmt.Sprintf("  %-16s %s  %s\n", "Overall", RenderProgress(s.ProgressPct, statsBarWidth),
		Dim(fmt.Sprintf("%d/%d days done", s.Done, s.Total))))
	b.WriteString(fmt.Sprintf("  %-16s %s  %s\n", "ISTQB coverage", RenderProgress(s.CertCoveragePct, statsBarWidth),
		Dim(fmt.Sprintf("%d/%d certification days done", s.CertDone, s.CertTotal))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("%d Done", s.Done)),
		StyleYellow.Render(fmt.Sprintf("%d In Progress", s.InProgress)),
		StyleDim.Render(fmt.Sprintf("%d Not Started", s.NotStarted)),
	))
	if s.HoursLogged > 0 || s.RatedDays > 0 {
		line := fmt.Sprintf("  %s logged", FormatHours(&s.HoursLogged))
		if s.RatedDays > 0 {
			line += fmt.Sprintf(", average confidence %.1f/5 over %d days", s.AvgConfidence, s.RatedDays)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
