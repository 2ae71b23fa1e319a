package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the dashboard palette.
type Theme struct {
	Name string

	Background    string
	Surface       string
	SelectionBg   string
	SelectionText string
	Border        string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Background:    "#282a36",
		Surface:       "#44475a",
		SelectionBg:   "#6272a4",
		SelectionText: "#f8f8f2",
		Border:        "#6272a4",
		Text:          "#f8f8f2",
		Muted:         "#9ca3b8",
		Faint:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
	},
	{
		Name:          "Nord",
		Background:    "#2e3440",
		Surface:       "#3b4252",
		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",
		Border:        "#4c566a",
		Text:          "#d8dee9",
		Muted:         "#81a1c1",
		Faint:         "#4c566a",
		Accent:        "#88c0d0",
		Success:       "#a3be8c",
		Warning:       "#ebcb8b",
		Danger:        "#bf616a",
	},
	{
		Name:          "Gruvbox",
		Background:    "#282828",
		Surface:       "#3c3836",
		SelectionBg:   "#504945",
		SelectionText: "#fbf1c7",
		Border:        "#665c54",
		Text:          "#ebdbb2",
		Muted:         "#a89984",
		Faint:         "#665c54",
		Accent:        "#d3869b",
		Success:       "#b8bb26",
		Warning:       "#fabd2f",
		Danger:        "#fb4934",
	},
}

// GetTheme returns the named theme, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// Styles bundles the lipgloss styles derived from a theme.
type Styles struct {
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Notice      lipgloss.Style
	ErrorBanner lipgloss.Style
	Prompt      lipgloss.Style
}

// Styles builds the style set for the theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Padding(0, 1),
		ErrorBanner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
	}
}

// statusColor maps a pipeline status to a theme color.
func (t Theme) statusColor(status string) string {
	switch status {
	case "complete", "transferred":
		return t.Success
	case "rejected":
		return t.Danger
	case "downloading", "downloaded":
		return t.Warning
	default:
		return t.Muted
	}
}
