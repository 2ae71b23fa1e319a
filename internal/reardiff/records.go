package reardiff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Record is one API row: a dynamically shaped mapping from field name to
// value. The dashboard never imposes a schema on these.
type Record map[string]any

// String returns the value for key rendered as a string, or "" when absent.
func (r Record) String(key string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return FormatValue(value)
}

// Bool returns the boolean value for key, defaulting to false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Int returns the integer value for key. JSON numbers decode as float64,
// so both representations are accepted.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}

// Float returns the numeric value for key, or 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// ListResponse is the envelope the rear-diff listing endpoints return. The
// API uses two pagination shapes (top-level totals for media, a nested
// pagination object for predictions); both decode into this one struct.
type ListResponse struct {
	Data    []Record `json:"data"`
	Total   int      `json:"total"`
	Pages   int      `json:"pages"`
	HasMore bool     `json:"-"`
}

// UnmarshalJSON accepts either pagination envelope.
func (lr *ListResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Data       []Record `json:"data"`
		Total      int      `json:"total"`
		Count      int      `json:"count"`
		Pages      int      `json:"pages"`
		Pagination *struct {
			HasMore bool `json:"has_more"`
			Total   int  `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lr.Data = raw.Data
	lr.Total = raw.Total
	if lr.Total == 0 {
		lr.Total = raw.Count
	}
	lr.Pages = raw.Pages
	if raw.Pagination != nil {
		lr.HasMore = raw.Pagination.HasMore
		if lr.Total == 0 {
			lr.Total = raw.Pagination.Total
		}
	}
	return nil
}

// preferredColumns orders well-known identifier and headline fields ahead
// of the alphabetical remainder when deriving columns from records.
var preferredColumns = []string{
	"imdb_id",
	"hash",
	"version",
	"media_title",
	"description",
	"media_type",
	"label",
	"prediction",
	"probability",
	"actual",
	"cm_value",
	"pipeline_status",
	"error_status",
	"rejection_status",
	"reviewed",
	"human_labeled",
	"anomalous",
	"success",
	"script",
	"installed_on",
	"updated_at",
}

// Columns derives a stable display column order from the fields actually
// present in records: preferred fields first, the rest alphabetical.
func Columns(records []Record) []string {
	seen := map[string]bool{}
	for _, record := range records {
		for key := range record {
			seen[key] = true
		}
	}

	var columns []string
	for _, key := range preferredColumns {
		if seen[key] {
			columns = append(columns, key)
			delete(seen, key)
		}
	}

	rest := make([]string, 0, len(seen))
	for key := range seen {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

// FormatValue renders an arbitrary record value for display. Absent and
// null values render as "NULL", matching how the API represents unknowns.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.3f", v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
