package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gauge/internal/reardiff"
)

// detailView is the full-record overlay: every field of the selected row,
// scrollable, since listings cap and truncate their columns.
type detailView struct {
	title string
	vp    viewport.Model
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	p := m.panes[m.currentView]
	rec := p.selected()
	if rec == nil {
		return m, nil
	}

	title := rec.String("media_title")
	if title == "" {
		title = rec.String("imdb_id")
	}
	if title == "" {
		title = m.currentView.Title() + " record"
	}

	vp := viewport.New(m.tableWidth(), m.tableHeight())
	vp.SetContent(renderRecord(rec, m.theme))

	m.detail = &detailView{title: title, vp: vp}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.detail.vp, cmd = m.detail.vp.Update(msg)
	return m, cmd
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	header := styles.AccentText.Bold(true).Padding(0, 1).Render(truncate(m.detail.title, m.width-2))
	hint := styles.FaintText.Padding(0, 1).Render("j/k scroll · esc close")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.detail.vp.View(), hint)
}

// renderRecord lays out every field of a record, widest label first pass,
// in the same preferred-then-alphabetical order the listings use.
func renderRecord(rec reardiff.Record, theme Theme) string {
	styles := theme.Styles()
	fields := reardiff.Columns([]reardiff.Record{rec})

	labelWidth := 0
	for _, field := range fields {
		if len(field) > labelWidth {
			labelWidth = len(field)
		}
	}

	var b strings.Builder
	for _, field := range fields {
		label := styles.MutedText.Render(fmt.Sprintf("%-*s", labelWidth, field))
		value := reardiff.FormatValue(rec[field])
		if field == "pipeline_status" {
			value = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.statusColor(value))).
				Render(value)
		} else {
			value = styles.Text.Render(value)
		}
		b.WriteString("  " + label + "  " + value + "\n")
	}
	return b.String()
}
