package common

import (
	"net/http"
	"strconv"
)

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
}

// MaxPerPage caps the per-page size a client can request.
const MaxPerPage = 500

// MaxPage caps the page number a client can request. Values past it clamp
// rather than error so deep pagination degrades to empty pages instead of
// overflowing offset arithmetic downstream.
const MaxPage = 1 << 30

// ParsePagination extracts page and per-page values from the query string,
// falling back to page 1 and the provided default. Both values are clamped
// to the caps above.
func ParsePagination(r *http.Request, defaultPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		perPage = l
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return
}

// AtoiDefault converts value to an integer, returning def when the string
// is empty or unparsable.
func AtoiDefault(value string, def int) int {
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
