package ui

import (
	"errors"
	"testing"

	"github.com/five82/gauge/internal/reardiff"
)

func testTheme() Theme { return GetTheme("Dracula") }

func displayingPane(view View, rows []reardiff.Record, resp *reardiff.ListResponse) *pane {
	p := newPanes(25)[view]
	p.applyResponse(resp, rows, 120, 10, testTheme())
	return p
}

func TestNewPanesTrainingDefaults(t *testing.T) {
	p := newPanes(50)[ViewTraining]
	if p.reviewedFilter != "unreviewed" {
		t.Errorf("reviewedFilter = %q, want unreviewed", p.reviewedFilter)
	}
	if got := p.params.Filters["reviewed"]; got != "false" {
		t.Errorf("reviewed filter = %q, want false", got)
	}
	if got := p.params.Filters["media_type"]; got != "movie" {
		t.Errorf("media_type filter = %q, want movie", got)
	}
	if p.params.PageSize != 50 {
		t.Errorf("page size = %d, want 50", p.params.PageSize)
	}
}

func TestNewPanesPredictionsSortByProbability(t *testing.T) {
	p := newPanes(25)[ViewPredictions]
	if p.params.SortBy != "probability" {
		t.Errorf("sort = %q, want probability", p.params.SortBy)
	}
	if p.cmFilter != "all" {
		t.Errorf("cmFilter = %q, want all", p.cmFilter)
	}
}

func TestApplyResponseEntersDisplaying(t *testing.T) {
	rows := []reardiff.Record{{"imdb_id": "tt0000001"}}
	p := displayingPane(ViewTraining, rows, &reardiff.ListResponse{Data: rows, Total: 1})
	if p.phase != phaseDisplaying {
		t.Fatalf("phase = %d, want displaying", p.phase)
	}
	if !p.hasTable {
		t.Error("expected table to be built")
	}
	if p.err != nil {
		t.Errorf("err = %v, want nil", p.err)
	}
}

func TestFailKeepsPriorRows(t *testing.T) {
	rows := []reardiff.Record{{"imdb_id": "tt0000001"}}
	p := displayingPane(ViewTraining, rows, &reardiff.ListResponse{Data: rows})

	p.fail(errors.New("boom"))

	if p.phase != phaseError {
		t.Fatalf("phase = %d, want error", p.phase)
	}
	if len(p.rows) != 1 {
		t.Errorf("rows were dropped on failure: %d left", len(p.rows))
	}
}

func TestSelected(t *testing.T) {
	rows := []reardiff.Record{
		{"imdb_id": "tt0000001"},
		{"imdb_id": "tt0000002"},
	}
	p := displayingPane(ViewTraining, rows, &reardiff.ListResponse{Data: rows})
	rec := p.selected()
	if rec == nil || rec.String("imdb_id") != "tt0000001" {
		t.Errorf("selected = %v, want first row", rec)
	}

	empty := newPanes(25)[ViewMedia]
	if empty.selected() != nil {
		t.Error("selected on empty pane should be nil")
	}
}

func TestNextPageRespectsPageCount(t *testing.T) {
	rows := []reardiff.Record{{"imdb_id": "tt0000001"}}
	p := displayingPane(ViewTraining, rows, &reardiff.ListResponse{Data: rows, Total: 30, Pages: 2})

	if !p.nextPage() {
		t.Fatal("expected page 1 -> 2 to advance")
	}
	if p.params.Page != 2 {
		t.Errorf("page = %d, want 2", p.params.Page)
	}
	if p.nextPage() {
		t.Error("expected page 2 of 2 to stay put")
	}
}

func TestNextPageWithoutPageCountUsesFill(t *testing.T) {
	// A short page with no has_more hint means the listing is exhausted.
	rows := []reardiff.Record{{"imdb_id": "tt0000001"}}
	p := displayingPane(ViewTraining, rows, &reardiff.ListResponse{Data: rows})
	if p.nextPage() {
		t.Error("short final page should not advance")
	}

	full := make([]reardiff.Record, 25)
	for i := range full {
		full[i] = reardiff.Record{"imdb_id": "tt0000001"}
	}
	p2 := displayingPane(ViewTraining, full, &reardiff.ListResponse{Data: full})
	if !p2.nextPage() {
		t.Error("full page should advance optimistically")
	}
}

func TestPrevPageStopsAtOne(t *testing.T) {
	p := newPanes(25)[ViewTraining]
	if p.prevPage() {
		t.Error("page 1 should not step back")
	}
	p.params.Page = 3
	if !p.prevPage() {
		t.Fatal("expected step back from page 3")
	}
	if p.params.Page != 2 {
		t.Errorf("page = %d, want 2", p.params.Page)
	}
}
