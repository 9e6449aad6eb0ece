package handling

import (
	"net/http"
	"strconv"
	"strings"
)

// ListOptions are the generic pagination and search parameters accepted by
// the listing endpoints.
type ListOptions struct {
	Page          int
	PageSize      int
	Search        string
	SortBy        string
	SortDirection string
}

// ParseListOptions parses HTTP query parameters into ListOptions. Missing
// values stay zero so the service layer can apply its own defaults.
func ParseListOptions(r *http.Request) (*ListOptions, error) {
	query := r.URL.Query()

	opts := &ListOptions{}
	if len(query) == 0 {
		return opts, nil
	}

	if page := query.Get("page"); page != "" {
		val, err := strconv.Atoi(page)
		if err != nil {
			return nil, err
		}
		opts.Page = val
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		val, err := strconv.Atoi(pageSize)
		if err != nil {
			return nil, err
		}
		opts.PageSize = val
	}

	if search := query.Get("search"); search != "" {
		opts.Search = strings.TrimSpace(search)
	}

	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}
