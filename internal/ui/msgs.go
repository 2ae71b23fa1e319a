package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/cache"
	"github.com/five82/gauge/internal/query"
	"github.com/five82/gauge/internal/reardiff"
)

// Cache TTLs follow the read patterns: listings refresh lazily, media
// searches go stale fast because the pipeline advances items on its own.
const (
	listTTL        = 5 * time.Minute
	mediaSearchTTL = time.Minute

	// The API cannot filter predictions by confusion-matrix value, so a
	// filtered view over-fetches and filters client-side.
	cmOverFetchFactor = 5
)

type tickMsg time.Time

// listLoadedMsg delivers a (possibly cached) listing to its pane. rows is
// the display set after any client-side filtering or sorting.
type listLoadedMsg struct {
	view View
	resp *reardiff.ListResponse
	rows []reardiff.Record
	err  error
}

// mutationDoneMsg reports the outcome of a PATCH issued by a pane.
type mutationDoneMsg struct {
	view       View
	desc       string
	invalidate []string
	err        error
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd loads the listing for a pane through the session cache.
func (m Model) fetchCmd(v View) tea.Cmd {
	p := m.panes[v]
	params := p.params
	cmFilter := p.cmFilter
	ctx, client, store := m.ctx, m.client, m.cache

	return func() tea.Msg {
		resp, rows, err := fetchListing(ctx, client, store, v, params, cmFilter)
		return listLoadedMsg{view: v, resp: resp, rows: rows, err: err}
	}
}

func fetchListing(ctx context.Context, client *reardiff.Client, store *cache.Store, v View, params query.Params, cmFilter string) (*reardiff.ListResponse, []reardiff.Record, error) {
	switch v {
	case ViewTraining:
		resp, err := cachedList(store, params.Key(reardiff.EndpointTraining), listTTL, func() (*reardiff.ListResponse, error) {
			return client.FetchTraining(ctx, params)
		})
		if err != nil {
			return nil, nil, err
		}
		return resp, resp.Data, nil

	case ViewPredictions:
		return fetchPredictions(ctx, client, store, params, cmFilter)

	case ViewMedia:
		ttl := listTTL
		if params.Filters["hash"] != "" || params.Filters["media_title"] != "" {
			ttl = mediaSearchTTL
		}
		resp, err := cachedList(store, params.PageKey(reardiff.EndpointMedia), ttl, func() (*reardiff.ListResponse, error) {
			return client.FetchMedia(ctx, params)
		})
		if err != nil {
			return nil, nil, err
		}
		return resp, resp.Data, nil

	case ViewMigrations:
		resp, err := cachedList(store, reardiff.EndpointFlyway, listTTL, func() (*reardiff.ListResponse, error) {
			return client.FetchMigrations(ctx)
		})
		if err != nil {
			return nil, nil, err
		}
		return resp, sortMigrations(resp.Data, params.Normalized().SortOrder), nil

	default:
		return nil, nil, fmt.Errorf("unknown view %d", v)
	}
}

// fetchPredictions over-fetches when a confusion-matrix filter is active
// and narrows the rows client-side, as the API has no cm_value parameter
// on the listing. The filtered fetch window anchors at offset 0 and grows
// with the page; stepping the raw listing by offset would skip or repeat
// matches whose positions do not line up with page boundaries.
func fetchPredictions(ctx context.Context, client *reardiff.Client, store *cache.Store, params query.Params, cmFilter string) (*reardiff.ListResponse, []reardiff.Record, error) {
	n := params.Normalized()
	values := n.Values()
	filtered := cmFilter != "" && cmFilter != "all"
	if filtered {
		values.Set("offset", "0")
		values.Set("limit", strconv.Itoa(n.Page*n.PageSize*cmOverFetchFactor))
	}

	key := reardiff.EndpointPrediction + "?" + values.Encode()
	resp, err := cachedList(store, key, listTTL, func() (*reardiff.ListResponse, error) {
		return client.Get(ctx, reardiff.EndpointPrediction, values)
	})
	if err != nil {
		return nil, nil, err
	}
	if !filtered {
		return resp, resp.Data, nil
	}
	return resp, pageOfMatches(resp.Data, cmFilter, n.Page, n.PageSize), nil
}

// pageOfMatches selects one page of the records in the requested
// confusion-matrix bucket. The match list is rebuilt from scratch so the
// shared cache entry stays untouched.
func pageOfMatches(records []reardiff.Record, cmValue string, page, pageSize int) []reardiff.Record {
	var matches []reardiff.Record
	for _, record := range records {
		if record.String("cm_value") == cmValue {
			matches = append(matches, record)
		}
	}
	start := (page - 1) * pageSize
	if start >= len(matches) {
		return nil
	}
	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end]
}

// cachedList adapts the any-typed cache to listing responses. The cached
// value is shared across hits, so callers must not mutate it.
func cachedList(store *cache.Store, key string, ttl time.Duration, fetch func() (*reardiff.ListResponse, error)) (*reardiff.ListResponse, error) {
	value, err := store.GetOrFetch(key, ttl, func() (any, error) {
		return fetch()
	})
	if err != nil {
		return nil, err
	}
	resp, ok := value.(*reardiff.ListResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T for %s", value, key)
	}
	return resp, nil
}

// sortMigrations orders migration records by numeric version. The flyway
// endpoint returns history unsorted and takes no parameters, so ordering
// is a display concern.
func sortMigrations(records []reardiff.Record, order string) []reardiff.Record {
	sorted := make([]reardiff.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, _ := strconv.ParseFloat(sorted[i].String("version"), 64)
		vj, _ := strconv.ParseFloat(sorted[j].String("version"), 64)
		if order == "asc" {
			return vi < vj
		}
		return vi > vj
	})
	return sorted
}

// mutateCmd runs one PATCH and reports the outcome. Cache invalidation
// happens in Update, and only when the mutation succeeded.
func (m Model) mutateCmd(v View, desc string, invalidate []string, call func(context.Context) (reardiff.Record, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_, err := call(ctx)
		return mutationDoneMsg{view: v, desc: desc, invalidate: invalidate, err: err}
	}
}
