package ui

import tea "github.com/charmbracelet/bubbletea"

// Migrations is read-only: navigation plus the global sort and refresh keys.
func (m Model) handleMigrationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m.handleTableKey(msg)
}
