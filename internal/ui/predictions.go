package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/reardiff"
)

// cmFilters cycles through the confusion-matrix buckets: false positives
// and false negatives first, since those are the rows worth correcting.
var cmFilters = []string{"all", "fp", "fn", "tp", "tn"}

func (m Model) handlePredictionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[ViewPredictions]

	switch msg.String() {
	case "w":
		return m.labelSelected(ViewPredictions, reardiff.LabelWouldWatch)
	case "n":
		return m.labelSelected(ViewPredictions, reardiff.LabelWouldNotWatch)

	case "f":
		for i, f := range cmFilters {
			if f == p.cmFilter {
				p.cmFilter = cmFilters[(i+1)%len(cmFilters)]
				break
			}
		}
		p.params.Page = 1
		return m.reload()
	}

	return m.handleTableKey(msg)
}
