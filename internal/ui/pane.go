package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/five82/gauge/internal/query"
	"github.com/five82/gauge/internal/reardiff"
)

// View identifies one dashboard screen.
type View int

const (
	ViewTraining View = iota
	ViewPredictions
	ViewMedia
	ViewMigrations

	viewCount
)

// Title returns the tab label for the view.
func (v View) Title() string {
	switch v {
	case ViewTraining:
		return "training"
	case ViewPredictions:
		return "predictions"
	case ViewMedia:
		return "media"
	case ViewMigrations:
		return "migrations"
	default:
		return "?"
	}
}

// phase is the view controller state. Read actions loop through
// phaseLoading; mutations go through phaseSubmitting. There is no terminal
// phase: a pane lives as long as the session.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseDisplaying
	phaseError
	phaseSubmitting
)

// pane is the per-view controller: parameters, fetched rows, and transient
// edit state. A failed mutation or refresh keeps the previously displayed
// rows; only a successful fetch replaces them.
type pane struct {
	view   View
	phase  phase
	params query.Params

	resp     *reardiff.ListResponse
	rows     []reardiff.Record
	table    table.Model
	hasTable bool

	err    error
	notice string

	// training
	reviewedFilter  string // unreviewed, reviewed, all
	anomalousFilter string // all, yes, no

	// predictions
	cmFilter string // all, fp, fn, tp, tn

	// search (training, media)
	searchTerm  string
	searchField string
}

// newPanes builds the initial controller set. Training starts on the
// unreviewed movie backlog; predictions sort by model confidence.
func newPanes(pageSize int) map[View]*pane {
	return map[View]*pane{
		ViewTraining: {
			view:           ViewTraining,
			params:         query.Params{PageSize: pageSize}.WithFilter("media_type", "movie").WithFilter("reviewed", "false"),
			reviewedFilter: "unreviewed",
		},
		ViewPredictions: {
			view:     ViewPredictions,
			params:   query.Params{PageSize: pageSize, SortBy: "probability"},
			cmFilter: "all",
		},
		ViewMedia: {
			view:   ViewMedia,
			params: query.Params{PageSize: pageSize},
		},
		ViewMigrations: {
			view:   ViewMigrations,
			params: query.Params{SortBy: "version"},
		},
	}
}

// applyResponse installs freshly fetched rows and rebuilds the table,
// preserving the cursor where possible.
func (p *pane) applyResponse(resp *reardiff.ListResponse, rows []reardiff.Record, width, height int, theme Theme) {
	cursor := 0
	if p.hasTable {
		cursor = p.table.Cursor()
	}

	p.resp = resp
	p.rows = rows
	p.err = nil
	p.phase = phaseDisplaying

	fields := reardiff.Columns(rows)
	p.table = newListingTable(rows, fields, width, height, theme)
	p.hasTable = true
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor > 0 {
		p.table.SetCursor(cursor)
	}
}

// fail records a read failure. Previously displayed rows stay up so the
// operator can keep working against stale data.
func (p *pane) fail(err error) {
	p.err = err
	p.phase = phaseError
}

// selected returns the record under the cursor, or nil.
func (p *pane) selected() reardiff.Record {
	if !p.hasTable || len(p.rows) == 0 {
		return nil
	}
	cursor := p.table.Cursor()
	if cursor < 0 || cursor >= len(p.rows) {
		return nil
	}
	return p.rows[cursor]
}

// statusLine summarizes the pane's parameters for the footer.
func (p *pane) statusLine() string {
	n := p.params.Normalized()
	line := fmt.Sprintf("page %d · %d/pg · sort %s %s", n.Page, n.PageSize, n.SortBy, n.SortOrder)
	if p.view == ViewTraining && p.reviewedFilter != "all" {
		line += " · " + p.reviewedFilter
	}
	if p.view == ViewTraining && p.anomalousFilter != "" && p.anomalousFilter != "all" {
		line += " · anomalous: " + p.anomalousFilter
	}
	if p.view == ViewPredictions && p.cmFilter != "all" {
		line += " · cm: " + p.cmFilter
	}
	if p.searchTerm != "" {
		line += fmt.Sprintf(" · %s~%q", p.searchField, p.searchTerm)
	}
	if p.resp != nil && p.resp.Total > 0 {
		line += fmt.Sprintf(" · %d total", p.resp.Total)
	}
	return line
}

// nextPage advances pagination when more data is plausible.
func (p *pane) nextPage() bool {
	n := p.params.Normalized()
	if p.resp != nil {
		if p.resp.Pages > 0 && n.Page >= p.resp.Pages {
			return false
		}
		if p.resp.Pages == 0 && !p.resp.HasMore && len(p.rows) < n.PageSize {
			return false
		}
	}
	p.params.Page = n.Page + 1
	return true
}

// prevPage steps back one page.
func (p *pane) prevPage() bool {
	n := p.params.Normalized()
	if n.Page <= 1 {
		return false
	}
	p.params.Page = n.Page - 1
	return true
}
