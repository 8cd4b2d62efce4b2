// Package pagination wraps ordered query results into pages with
// navigation metadata and links.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Meta describes one page of a collection.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Links holds navigation references. Next is empty on the last page and
// Prev is empty on the first.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// Clamp bounds perPage to [1, MaxPerPage], applying the default when the
// value is not positive.
func Clamp(perPage int) int {
	if perPage <= 0 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// NewMeta computes page metadata for a result set of total items.
func NewMeta(total int64, page, perPage int) Meta {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Meta{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Slice returns the offset and limit for the requested page. Pages below
// 1 or beyond the last page yield limit 0, so callers return an empty
// item slice rather than an error.
func Slice(total int64, page, perPage int) (offset, limit int) {
	if page < 1 {
		return 0, 0
	}
	offset = (page - 1) * perPage
	if int64(offset) >= total {
		return 0, 0
	}
	return offset, perPage
}

// NewLinks builds self/next/prev references for a collection endpoint,
// carrying over any extra query values (e.g. search terms or filters).
func NewLinks(basePath string, query url.Values, meta Meta) Links {
	links := Links{Self: pageURL(basePath, query, meta.Page, meta.PerPage)}
	if meta.Page < meta.TotalPages {
		links.Next = pageURL(basePath, query, meta.Page+1, meta.PerPage)
	}
	if meta.Page > 1 {
		links.Prev = pageURL(basePath, query, meta.Page-1, meta.PerPage)
	}
	return links
}

func pageURL(basePath string, query url.Values, page, perPage int) string {
	values := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	return basePath + "?" + values.Encode()
}
