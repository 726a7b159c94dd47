package products

import (
	"testing"

	"vitrina/models"
	"vitrina/utils"

	"github.com/stretchr/testify/assert"
)

func page(n, limit int) utils.QueryOptions {
	return utils.QueryOptions{Page: n, Limit: limit}
}

func TestPaginateFirstOfMany(t *testing.T) {
	resp := paginate(make([]models.Product, 10), 21, page(1, 10))

	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, int64(21), resp.TotalProducts)
	assert.True(t, resp.HasNextPage)
	assert.False(t, resp.HasPrevPage)
}

func TestPaginateLastPage(t *testing.T) {
	resp := paginate(make([]models.Product, 1), 21, page(3, 10))

	assert.False(t, resp.HasNextPage)
	assert.True(t, resp.HasPrevPage)
}

func TestPaginateExactMultiple(t *testing.T) {
	resp := paginate(make([]models.Product, 10), 20, page(2, 10))

	assert.Equal(t, 2, resp.TotalPages)
	assert.False(t, resp.HasNextPage)
	assert.True(t, resp.HasPrevPage)
}

func TestPaginateEmptyResult(t *testing.T) {
	resp := paginate(nil, 0, page(1, 10))

	assert.NotNil(t, resp.Products)
	assert.Empty(t, resp.Products)
	assert.Equal(t, 0, resp.TotalPages)
	assert.False(t, resp.HasNextPage)
	assert.False(t, resp.HasPrevPage)
}

func TestPaginatePageBeyondEnd(t *testing.T) {
	resp := paginate(nil, 21, page(9, 10))

	assert.False(t, resp.HasNextPage)
	assert.True(t, resp.HasPrevPage)
}
