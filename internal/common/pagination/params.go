package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"scrollfeed/internal/domain/entity"
)

// Params are the parsed page request parameters.
type Params struct {
	Page    int  // 1-based page number
	Limit   int  // Items per page
	Refresh bool // Materialize new records at the corpus head before slicing page 1
}

// ParseQueryParams reads page, limit and refresh from the request query string.
// Absent values take the configured defaults. The result is checked with Params.Validate.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}
	q := r.URL.Query()

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer: %w", entity.ErrInvalidPage)
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d: %w", config.MaxLimit, entity.ErrInvalidPage)
		}
		params.Limit = limit
	}

	if refreshStr := q.Get("refresh"); refreshStr != "" {
		refresh, err := strconv.ParseBool(refreshStr)
		if err != nil {
			return params, fmt.Errorf("invalid query parameter: refresh must be true or false")
		}
		params.Refresh = refresh
	}

	return params, params.Validate(config)
}
