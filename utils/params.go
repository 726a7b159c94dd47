package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Status   string
	MinPrice *float64
	MaxPrice *float64
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	opts := QueryOptions{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}

	if minStr := q.Get("min"); minStr != "" {
		if v, err := strconv.ParseFloat(minStr, 64); err == nil {
			opts.MinPrice = &v
		}
	}
	if maxStr := q.Get("max"); maxStr != "" {
		if v, err := strconv.ParseFloat(maxStr, 64); err == nil {
			opts.MaxPrice = &v
		}
	}

	return opts
}

// TotalPages returns the page count for a result set of n items.
func TotalPages(n int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := int(n) / limit
	if int(n)%limit != 0 {
		pages++
	}
	return pages
}
