package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: [][2]string{
			{"1-4 / tab", "switch view"},
			{"j/k, ↑/↓", "move cursor"},
			{"enter", "full record detail"},
			{"[ / ]", "previous / next page"},
			{"+", "cycle page size (25/50/100)"},
			{"s", "flip sort order"},
			{"R", "refresh (drop cache)"},
			{"T", "cycle theme"},
			{"h / ?", "this help"},
			{"q", "quit"},
		},
	},
	{
		title: "Training",
		keys: [][2]string{
			{"w / n", "label would watch / would not watch"},
			{"r", "mark reviewed"},
			{"a", "toggle anomalous"},
			{"f", "cycle reviewed filter"},
			{"A", "cycle anomalous filter"},
			{"/", "search by title or tt id"},
		},
	},
	{
		title: "Predictions",
		keys: [][2]string{
			{"w / n", "correct the label"},
			{"f", "cycle confusion-matrix filter"},
		},
	},
	{
		title: "Media",
		keys: [][2]string{
			{"e", "set pipeline status"},
			{"D / P / F", "soft-delete / promote / finish (confirm with y)"},
			{"/", "search by title or hash"},
		},
	},
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("gauge — key bindings"))
	b.WriteString("\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(styles.Text.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			key := styles.AccentText.Render(padRight(k[0], 12))
			b.WriteString("  " + key + styles.MutedText.Render(k[1]) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
