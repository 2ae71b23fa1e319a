// Package query translates listing state (page, sort, filters) into the
// canonical parameter set the rear-diff API expects. The encoded form is
// deterministic for a given input, which is what makes it usable as a
// cache key.
package query

import (
	"net/url"
	"strconv"
)

const (
	// DefaultSortBy and DefaultSortOrder match the API's listing defaults.
	DefaultSortBy    = "updated_at"
	DefaultSortOrder = "desc"
	DefaultPageSize  = 25
)

// PageSizes enumerates the page sizes the UI offers.
var PageSizes = []int{25, 50, 100}

// Params describes one listing request.
type Params struct {
	Page      int // 1-based; values below 1 are treated as 1
	PageSize  int
	SortBy    string
	SortOrder string // "asc" or "desc"
	Filters   map[string]string
}

// Normalized returns a copy with defaults applied and the page size clamped
// to an allowed value.
func (p Params) Normalized() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PageSize = clampPageSize(p.PageSize)
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder != "asc" {
		p.SortOrder = DefaultSortOrder
	}
	return p
}

// Values builds the outgoing query parameters, computing
// offset = (page-1) * pageSize.
func (p Params) Values() url.Values {
	n := p.Normalized()
	values := url.Values{}
	values.Set("limit", strconv.Itoa(n.PageSize))
	values.Set("offset", strconv.Itoa((n.Page-1)*n.PageSize))
	values.Set("sort_by", n.SortBy)
	values.Set("sort_order", n.SortOrder)
	for key, value := range n.Filters {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// Key returns the cache key for this parameter set against an endpoint.
// url.Values.Encode sorts by key, so equal Params always produce equal keys.
func (p Params) Key(endpoint string) string {
	return endpoint + "?" + p.Values().Encode()
}

// PageValues is Values for endpoints that paginate by page number rather
// than offset (the media listing).
func (p Params) PageValues() url.Values {
	n := p.Normalized()
	values := n.Values()
	values.Del("offset")
	values.Set("page", strconv.Itoa(n.Page))
	return values
}

// PageKey returns the cache key for a page-paginated endpoint.
func (p Params) PageKey(endpoint string) string {
	return endpoint + "?" + p.PageValues().Encode()
}

// WithFilter returns a copy with one filter set (or removed when value is
// empty). The receiver's filter map is never mutated.
func (p Params) WithFilter(key, value string) Params {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	p.Filters = filters
	return p
}

// NextPageSize cycles to the next allowed page size.
func NextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return PageSizes[0]
}

func clampPageSize(size int) int {
	for _, allowed := range PageSizes {
		if size == allowed {
			return size
		}
	}
	return DefaultPageSize
}
