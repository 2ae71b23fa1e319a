package reardiff

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestColumns_PreferredThenAlphabetical(t *testing.T) {
	records := []Record{
		{"zebra": 1, "media_title": "Heat", "imdb_id": "tt0113277"},
		{"alpha": 2, "media_title": "Ronin", "imdb_id": "tt0122690", "label": "would_watch"},
	}
	got := Columns(records)
	want := []string{"imdb_id", "media_title", "label", "alpha", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns = %v, want %v", got, want)
	}
}

func TestColumns_UnionAcrossRecords(t *testing.T) {
	records := []Record{
		{"a": 1},
		{"b": 2},
	}
	got := Columns(records)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns = %v, want %v", got, want)
	}
}

func TestColumns_Empty(t *testing.T) {
	if got := Columns(nil); len(got) != 0 {
		t.Fatalf("Columns(nil) = %v, want empty", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "heat", "heat"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"whole float", float64(85), "85"},
		{"fraction", 0.9234, "0.923"},
		{"slice", []any{"US", "GB"}, "US, GB"},
		{"nested slice", []any{float64(1), float64(2)}, "1, 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatValue(tc.in); got != tc.want {
				t.Fatalf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	record := Record{
		"media_title": "Heat",
		"reviewed":    true,
		"rt_score":    float64(86),
		"probability": 0.91,
	}
	if got := record.String("media_title"); got != "Heat" {
		t.Fatalf("String = %q", got)
	}
	if got := record.String("missing"); got != "" {
		t.Fatalf("String(missing) = %q, want empty", got)
	}
	if !record.Bool("reviewed") {
		t.Fatal("Bool(reviewed) = false")
	}
	if record.Bool("media_title") {
		t.Fatal("Bool on non-bool should be false")
	}
	if got := record.Int("rt_score"); got != 86 {
		t.Fatalf("Int = %d", got)
	}
	if got := record.Float("probability"); got != 0.91 {
		t.Fatalf("Float = %v", got)
	}
}

func TestListResponse_TopLevelTotals(t *testing.T) {
	payload := `{"data":[{"hash":"abc"}],"total":412,"pages":21}`
	var lr ListResponse
	if err := json.Unmarshal([]byte(payload), &lr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(lr.Data) != 1 || lr.Total != 412 || lr.Pages != 21 {
		t.Fatalf("decoded %+v", lr)
	}
}

func TestListResponse_NestedPagination(t *testing.T) {
	payload := `{"data":[{"imdb_id":"tt0113277"}],"pagination":{"has_more":true,"total":99}}`
	var lr ListResponse
	if err := json.Unmarshal([]byte(payload), &lr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !lr.HasMore {
		t.Fatal("HasMore = false, want true")
	}
	if lr.Total != 99 {
		t.Fatalf("Total = %d, want 99", lr.Total)
	}
}
