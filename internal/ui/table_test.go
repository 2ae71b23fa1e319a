package ui

import (
	"testing"

	"github.com/five82/gauge/internal/reardiff"
)

func TestBuildColumnsSizesFromContent(t *testing.T) {
	records := []reardiff.Record{
		{"imdb_id": "tt0111161", "media_title": "The Shawshank Redemption"},
	}
	columns := buildColumns(records, []string{"imdb_id", "media_title"}, 200)
	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	if columns[0].Width != len("tt0111161") {
		t.Errorf("imdb_id width = %d, want %d", columns[0].Width, len("tt0111161"))
	}
	if columns[1].Width != len("The Shawshank Redemption") {
		t.Errorf("media_title width = %d, want %d", columns[1].Width, len("The Shawshank Redemption"))
	}
}

func TestBuildColumnsCapsWidth(t *testing.T) {
	long := "a very long value that would otherwise blow out the column width entirely"
	records := []reardiff.Record{{"field": long}}
	columns := buildColumns(records, []string{"field"}, 200)
	if columns[0].Width != maxColumnWidth {
		t.Errorf("width = %d, want cap %d", columns[0].Width, maxColumnWidth)
	}
}

func TestBuildColumnsEnforcesMinimum(t *testing.T) {
	records := []reardiff.Record{{"id": "x"}}
	columns := buildColumns(records, []string{"id"}, 200)
	if columns[0].Width != minColumnWidth {
		t.Errorf("width = %d, want minimum %d", columns[0].Width, minColumnWidth)
	}
}

func TestBuildColumnsDropsOverflow(t *testing.T) {
	records := []reardiff.Record{
		{"one": "aaaaaaaaaa", "two": "bbbbbbbbbb", "three": "cccccccccc"},
	}
	columns := buildColumns(records, []string{"one", "two", "three"}, 26)
	if len(columns) != 2 {
		t.Fatalf("expected overflow column dropped, got %d columns", len(columns))
	}
	if columns[0].Title != "one" || columns[1].Title != "two" {
		t.Errorf("unexpected column order: %q, %q", columns[0].Title, columns[1].Title)
	}
}

func TestBuildRowsTruncatesCells(t *testing.T) {
	records := []reardiff.Record{
		{"field": "a very long value that would otherwise blow out the column"},
	}
	columns := buildColumns(records, []string{"field"}, 200)
	rows := buildRows(records, columns)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := len([]rune(rows[0][0])); got > maxColumnWidth {
		t.Errorf("cell length = %d, want <= %d", got, maxColumnWidth)
	}
}

func TestBuildRowsMissingFieldRendersNull(t *testing.T) {
	records := []reardiff.Record{{"present": "yes"}}
	columns := buildColumns(records, []string{"present", "absent"}, 200)
	rows := buildRows(records, columns)
	if rows[0][1] != "NULL" {
		t.Errorf("missing field rendered %q, want NULL", rows[0][1])
	}
}
