package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/reardiff"
)

func TestOpenDetailNeedsSelection(t *testing.T) {
	m := testModel(t)
	updated, _ := m.openDetail()
	if updated.(Model).detail != nil {
		t.Error("detail opened without a selected row")
	}
}

func TestOpenAndCloseDetail(t *testing.T) {
	m := testModel(t)
	m.width, m.height = 120, 40
	seedPane(m, ViewTraining, []reardiff.Record{
		{"imdb_id": "tt0111161", "media_title": "The Shawshank Redemption"},
	})

	updated, _ := m.openDetail()
	got := updated.(Model)
	if got.detail == nil {
		t.Fatal("detail did not open")
	}
	if got.detail.title != "The Shawshank Redemption" {
		t.Errorf("title = %q", got.detail.title)
	}

	updated, _ = got.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if updated.(Model).detail != nil {
		t.Error("esc did not close the detail overlay")
	}
}

func TestRenderRecordListsEveryField(t *testing.T) {
	rec := reardiff.Record{
		"imdb_id":     "tt0111161",
		"probability": 0.97,
		"anomalous":   false,
	}
	out := renderRecord(rec, testTheme())
	for _, field := range []string{"imdb_id", "probability", "anomalous"} {
		if !strings.Contains(out, field) {
			t.Errorf("detail output missing field %q", field)
		}
	}
}
