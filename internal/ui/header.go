package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var tabs []string
	for v := View(0); v < viewCount; v++ {
		label := strconv.Itoa(int(v)+1) + ":" + v.Title()
		if v == m.currentView {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}

	left := styles.Logo.Render("gauge") + "  " + strings.Join(tabs, "  ")
	right := m.renderHealth()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return styles.Header.Width(m.width).Render(line)
}

// renderHealth summarizes the poller's latest reading: a colored dot, the
// API state, and how stale the reading is.
func (m Model) renderHealth() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	if !snap.HasHealth {
		return styles.MutedText.Render("● checking…")
	}

	age := humanizeAge(snap.LastUpdated)
	switch {
	case snap.IsOffline():
		label := "● OFFLINE"
		if reason := classifyConnectionError(snap.LastError); reason != "" {
			label += " (" + reason + ")"
		}
		return styles.DangerText.Render(label)
	case !snap.Healthy:
		return styles.WarningText.Render("● degraded · " + age)
	default:
		return styles.SuccessText.Render("● online") + styles.MutedText.Render(" · "+age)
	}
}
