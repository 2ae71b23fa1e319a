package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"
)

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	p := m.panes[m.currentView]
	m.searchMode = true
	m.searchInput.SetValue(p.searchTerm)
	m.searchInput.CursorEnd()
	m.searchInput.Focus()
	return m, textinput.Blink
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m.applySearch(strings.TrimSpace(m.searchInput.Value()))
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// applySearch installs a search filter on the current pane. The field is
// inferred from the term: a tt-prefixed term targets imdb_id on training,
// a long hex term targets the content hash on media, anything else matches
// the title.
func (m Model) applySearch(term string) (tea.Model, tea.Cmd) {
	p := m.panes[m.currentView]

	// Clear whichever search field was previously active.
	p.params = p.params.WithFilter("imdb_id", "").
		WithFilter("media_title", "").
		WithFilter("hash", "")
	p.searchTerm = ""
	p.searchField = ""

	if term != "" {
		field := "media_title"
		switch {
		case m.currentView == ViewTraining && strings.HasPrefix(term, "tt"):
			field = "imdb_id"
		case m.currentView == ViewMedia && looksLikeHash(term):
			field = "hash"
		}
		p.params = p.params.WithFilter(field, term)
		p.searchTerm = term
		p.searchField = field
	}

	p.params.Page = 1
	return m.reload()
}

// looksLikeHash reports whether term resembles a content hash: lowercase
// hex of at least 32 characters.
func looksLikeHash(term string) bool {
	if len(term) < 32 {
		return false
	}
	for _, r := range term {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
