package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 2, TotalPages(20, 10), "exact multiple")
	assert.Equal(t, 3, TotalPages(21, 10), "remainder adds a page")
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10), "no results, no pages")
	assert.Equal(t, 0, TotalPages(50, 0), "unusable limit")
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)

	opts := ParseQueryOptions(r)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Empty(t, opts.Search)
	assert.Nil(t, opts.MinPrice)
	assert.Nil(t, opts.MaxPrice)
}

func TestParseQueryOptionsClampsBadPaging(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=-3&limit=0", nil)

	opts := ParseQueryOptions(r)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)

	r = httptest.NewRequest("GET", "/api/products?page=abc&limit=xyz", nil)
	opts = ParseQueryOptions(r)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
}

func TestParseQueryOptionsValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=3&limit=25&search=vib&category=lenceria&status=active&min=10.5&max=99", nil)

	opts := ParseQueryOptions(r)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, "vib", opts.Search)
	assert.Equal(t, "lenceria", opts.Category)
	assert.Equal(t, "active", opts.Status)
	require.NotNil(t, opts.MinPrice)
	require.NotNil(t, opts.MaxPrice)
	assert.Equal(t, 10.5, *opts.MinPrice)
	assert.Equal(t, 99.0, *opts.MaxPrice)
}

func TestParseQueryOptionsIgnoresMalformedPrices(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?min=cheap&max=12", nil)

	opts := ParseQueryOptions(r)

	assert.Nil(t, opts.MinPrice)
	require.NotNil(t, opts.MaxPrice)
	assert.Equal(t, 12.0, *opts.MaxPrice)
}
